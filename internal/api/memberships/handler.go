package memberships

import (
	"context"
	"log/slog"
	"net/http"

	"clubero-server/internal/api/apierr"
	"clubero-server/internal/app/http/middleware"
	"clubero-server/internal/domain/membership"
	"clubero-server/internal/domain/users"
	"clubero-server/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

type Joiner interface {
	JoinFree(ctx context.Context, req checkout.JoinRequest) (*checkout.JoinResult, error)
}

type Lister interface {
	ListMembershipsByEmail(ctx context.Context, email string) ([]membership.Membership, error)
}

type Handler struct {
	joiner Joiner
	store  Lister
	log    *slog.Logger
}

func NewHandler(j Joiner, store Lister, log *slog.Logger) *Handler {
	return &Handler{joiner: j, store: store, log: log}
}

// POST /memberships/free
func (h *Handler) JoinFree(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var body checkout.JoinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if body.Email == "" {
		body.Email = caller.Email
	} else if users.NormalizeEmail(body.Email) != caller.Email {
		c.JSON(http.StatusForbidden, gin.H{"message": "Email does not match the signed-in user"})
		return
	}

	result, err := h.joiner.JoinFree(c.Request.Context(), body)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GET /memberships
func (h *Handler) ListMine(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	list, err := h.store.ListMembershipsByEmail(c.Request.Context(), caller.Email)
	if err != nil {
		h.log.Error("list memberships failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load memberships"})
		return
	}

	c.JSON(http.StatusOK, list)
}
