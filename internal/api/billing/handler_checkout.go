package billing

import (
	"net/http"

	"clubero-server/internal/api/apierr"
	"clubero-server/internal/app/http/middleware"
	"clubero-server/internal/domain/users"
	"clubero-server/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

// POST /create-checkout-session
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var body checkout.CheckoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// Members pay for themselves.
	if body.Email == "" {
		body.Email = caller.Email
	} else if users.NormalizeEmail(body.Email) != caller.Email {
		c.JSON(http.StatusForbidden, gin.H{"message": "Email does not match the signed-in user"})
		return
	}

	url, err := h.reconciler.Initiate(c.Request.Context(), body)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// PATCH /payment-success?session_id=
func (h *Handler) ConfirmPayment(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "session_id is required"})
		return
	}

	result, err := h.reconciler.Confirm(c.Request.Context(), sessionID)
	if err != nil {
		apierr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
