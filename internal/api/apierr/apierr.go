package apierr

import (
	"errors"
	"log/slog"
	"net/http"

	"clubero-server/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// Respond maps a service error onto a status code and a {"message": ...}
// body. Client errors echo their message; faults log the cause and return
// a generic message.
func Respond(c *gin.Context, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, checkout.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, checkout.ErrAlreadyMember):
		c.JSON(http.StatusConflict, gin.H{"message": checkout.ErrAlreadyMember.Error()})
	case errors.Is(err, checkout.ErrGatewaySession):
		fault(c, log, err, checkout.ErrGatewaySession.Error())
	case errors.Is(err, checkout.ErrGatewayLookup):
		fault(c, log, err, checkout.ErrGatewayLookup.Error())
	case errors.Is(err, checkout.ErrPersistence):
		fault(c, log, err, checkout.ErrPersistence.Error())
	default:
		fault(c, log, err, "Internal server error")
	}
}

func fault(c *gin.Context, log *slog.Logger, err error, message string) {
	log.ErrorContext(c.Request.Context(), message, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}
