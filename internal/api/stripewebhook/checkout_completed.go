package stripewebhooks

import (
	"context"
	"fmt"

	"clubero-server/internal/service/checkout"

	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutSessionCompleted re-reads the session through the same
// confirmation path as the browser redirect, so whichever arrives second
// is reported as already processed.
func (h *Handler) handleCheckoutSessionCompleted(ctx context.Context, session *stripe.CheckoutSession) (*checkout.Result, error) {
	if session.ID == "" {
		return nil, fmt.Errorf("%w: checkout session missing id", checkout.ErrInvalidRequest)
	}
	result, err := h.confirmer.Confirm(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	h.log.InfoContext(ctx, "webhook confirmation",
		"session_id", session.ID,
		"success", result.Success,
		"already_processed", result.AlreadyProcessed,
	)
	return result, nil
}
