package billing

import (
	"context"
	"log/slog"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/users"
	"clubero-server/internal/service/checkout"
)

type Reconciler interface {
	Initiate(ctx context.Context, req checkout.CheckoutRequest) (string, error)
	Confirm(ctx context.Context, sessionID string) (*checkout.Result, error)
}

type PaymentStore interface {
	FindPaymentByEmailAndClub(ctx context.Context, email, clubID string) (*billing.Payment, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]billing.Payment, error)
	FindUserByEmail(ctx context.Context, email string) (*users.User, error)
}

type Handler struct {
	reconciler Reconciler
	store      PaymentStore
	log        *slog.Logger
}

func NewHandler(r Reconciler, store PaymentStore, log *slog.Logger) *Handler {
	return &Handler{reconciler: r, store: store, log: log}
}
