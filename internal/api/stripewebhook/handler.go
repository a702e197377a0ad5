package stripewebhooks

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"clubero-server/internal/service/checkout"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

const maxBodyBytes = 65536

type Confirmer interface {
	Confirm(ctx context.Context, sessionID string) (*checkout.Result, error)
}

type Handler struct {
	confirmer Confirmer
	secret    string
	log       *slog.Logger
}

func NewHandler(confirmer Confirmer, endpointSecret string, log *slog.Logger) *Handler {
	return &Handler{confirmer: confirmer, secret: endpointSecret, log: log}
}

// POST /webhook
func (h *Handler) StripeWebhook(c *gin.Context) {
	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		h.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.log.Warn("stripe signature verification failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to parse session"})
			return
		}
		result, err := h.handleCheckoutSessionCompleted(c.Request.Context(), &session)
		if errors.Is(err, checkout.ErrInvalidRequest) {
			// Redelivery cannot fix a session without club or payer.
			h.log.Warn("webhook session not reconcilable", "event_id", event.ID, "session_id", session.ID, "error", err)
			c.JSON(http.StatusOK, gin.H{"status": "ignored"})
			return
		}
		if err != nil {
			// 5xx makes Stripe redeliver the event.
			h.log.Error("webhook confirmation failed", "event_id", event.ID, "session_id", session.ID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to confirm session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "received", "result": result})

	default:
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	}
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
