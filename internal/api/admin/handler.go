package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/users"
	"clubero-server/internal/infra/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	recentRevenueWindow = 30 * 24 * time.Hour
	recentClubPayments  = 10
)

type Store interface {
	AdminStats(ctx context.Context, since time.Time) (*store.AdminStats, error)
	ClubSummary(ctx context.Context, clubID string, recent int) (*store.ClubSummary, error)
	ListPayments(ctx context.Context) ([]billing.Payment, error)
	ListUsers(ctx context.Context) ([]users.User, error)
	SetUserRole(ctx context.Context, id, role string) (bool, error)
}

type Handler struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewHandler(s Store, log *slog.Logger) *Handler {
	return &Handler{store: s, log: log, now: time.Now}
}

// GET /admin/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.AdminStats(c.Request.Context(), h.now().Add(-recentRevenueWindow))
	if err != nil {
		h.log.Error("admin stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /admin/payments
func (h *Handler) ListAllPayments(c *gin.Context) {
	payments, err := h.store.ListPayments(c.Request.Context())
	if err != nil {
		h.log.Error("list payments failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// GET /admin/users
func (h *Handler) ListAllUsers(c *gin.Context) {
	list, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.log.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, list)
}

type roleBody struct {
	Role string `json:"role"`
}

// PATCH /admin/users/:id/role
func (h *Handler) SetUserRole(c *gin.Context) {
	var body roleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	role := strings.ToLower(strings.TrimSpace(body.Role))
	if !users.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown role"})
		return
	}

	id := c.Param("id")
	// User ids are uuids; anything else cannot match a row.
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	found, err := h.store.SetUserRole(c.Request.Context(), id, role)
	if err != nil {
		h.log.Error("set role failed", "user_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update role"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	h.log.Info("role changed", "user_id", id, "role", role)
	c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
}

// GET /manager/clubs/:clubId/summary
func (h *Handler) GetClubSummary(c *gin.Context) {
	clubID := strings.TrimSpace(c.Param("clubId"))
	sum, err := h.store.ClubSummary(c.Request.Context(), clubID, recentClubPayments)
	if err != nil {
		h.log.Error("club summary failed", "club_id", clubID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load club summary"})
		return
	}
	c.JSON(http.StatusOK, sum)
}
