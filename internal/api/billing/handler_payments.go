package billing

import (
	"net/http"
	"strings"

	"clubero-server/internal/app/http/middleware"
	"clubero-server/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// GET /payments?email=&clubId= returns the payment record or null.
func (h *Handler) GetPaymentByEmailAndClub(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	email := users.NormalizeEmail(c.Query("email"))
	clubID := strings.TrimSpace(c.Query("clubId"))
	if email == "" || clubID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email and clubId are required"})
		return
	}

	if email != caller.Email && !h.isStaff(c, caller.Email) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	payment, err := h.store.FindPaymentByEmailAndClub(c.Request.Context(), email, clubID)
	if err != nil {
		h.log.Error("payment lookup failed", "club_id", clubID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load payment"})
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GET /payments/history
func (h *Handler) GetPaymentHistory(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	payments, err := h.store.ListPaymentsByEmail(c.Request.Context(), caller.Email)
	if err != nil {
		h.log.Error("payment history failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

func (h *Handler) isStaff(c *gin.Context, email string) bool {
	u, err := h.store.FindUserByEmail(c.Request.Context(), email)
	if err != nil || u == nil {
		return false
	}
	return u.Role == users.RoleManager || u.Role == users.RoleAdmin
}
