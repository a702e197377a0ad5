package users

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"clubero-server/internal/app/http/middleware"
	"clubero-server/internal/domain/membership"
	"clubero-server/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type Store interface {
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
	UpsertUser(ctx context.Context, u *users.User) (*users.User, error)
	ListMembershipsByEmail(ctx context.Context, email string) ([]membership.Membership, error)
}

type Handler struct {
	store Store
	log   *slog.Logger
}

func NewHandler(store Store, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

type upsertBody struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// POST /users saves the signed-in user's profile. The first call creates
// the row with the member role.
func (h *Handler) Upsert(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var body upsertBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.store.UpsertUser(c.Request.Context(), &users.User{
		Email:    caller.Email,
		Name:     strings.TrimSpace(body.Name),
		PhotoURL: strings.TrimSpace(body.PhotoURL),
	})
	if err != nil {
		h.log.Error("upsert user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to save user"})
		return
	}

	c.JSON(http.StatusOK, buildUserDTO(user))
}

// GET /users/me
func (h *Handler) GetCurrentUser(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.store.FindUserByEmail(ctx, caller.Email)
	if err != nil {
		h.log.Error("load user failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	list, err := h.store.ListMembershipsByEmail(ctx, caller.Email)
	if err != nil {
		h.log.Error("load memberships failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load memberships"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:        buildUserDTO(user),
		Memberships: buildMembershipDTOs(list),
	})
}
