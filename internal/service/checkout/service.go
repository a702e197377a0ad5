package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/membership"
	"clubero-server/internal/domain/users"
	"clubero-server/internal/infra/metrics"

	"github.com/google/uuid"
)

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error)
}

// Store persists the payments and membership collections. Lookups return
// (nil, nil) when nothing matches.
type Store interface {
	FindPaymentByTransactionID(ctx context.Context, transactionID string) (*billing.Payment, error)
	FindActiveMembership(ctx context.Context, email, clubID string) (*membership.Membership, error)
	// CreateMembershipWithPayment writes both records or neither. A clash on
	// transaction id yields billing.ErrDuplicateTransaction.
	CreateMembershipWithPayment(ctx context.Context, m *membership.Membership, p *billing.Payment) error
}

type Service struct {
	store   Store
	gateway Gateway
	log     *slog.Logger
	metrics *metrics.Metrics

	now   func() time.Time
	newID func() string
}

func New(store Store, gateway Gateway, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:   store,
		gateway: gateway,
		log:     logger.With("component", "checkout"),
		metrics: m,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Initiate opens a gateway checkout session for a paid club membership and
// returns the URL the payer is redirected to.
func (s *Service) Initiate(ctx context.Context, req CheckoutRequest) (string, error) {
	clubID := strings.TrimSpace(req.ClubID)
	clubName := strings.TrimSpace(req.ClubName)
	email := users.NormalizeEmail(req.Email)
	if clubID == "" || clubName == "" || email == "" {
		s.metrics.CheckoutSession(metrics.OutcomeRejected)
		return "", fmt.Errorf("%w: clubId, clubName and email are required", ErrInvalidRequest)
	}

	amount, err := ToMinorUnits(req.MembershipFee)
	if err != nil {
		s.metrics.CheckoutSession(metrics.OutcomeRejected)
		return "", err
	}
	if amount == 0 {
		s.metrics.CheckoutSession(metrics.OutcomeRejected)
		return "", fmt.Errorf("%w: free memberships are joined without checkout", ErrInvalidRequest)
	}

	existing, err := s.store.FindActiveMembership(ctx, email, clubID)
	if err != nil {
		s.metrics.CheckoutSession(metrics.OutcomeError)
		return "", fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if existing != nil {
		s.metrics.CheckoutSession(metrics.OutcomeRejected)
		return "", ErrAlreadyMember
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, SessionRequest{
		ProductName:   clubName,
		AmountMinor:   amount,
		CustomerEmail: email,
		Metadata: map[string]string{
			MetaClubID:    clubID,
			MetaClubName:  clubName,
			MetaUserEmail: email,
		},
	})
	if err != nil {
		s.metrics.CheckoutSession(metrics.OutcomeError)
		s.log.ErrorContext(ctx, "checkout session creation failed", "club_id", clubID, "error", err)
		return "", fmt.Errorf("%w: %w", ErrGatewaySession, err)
	}

	s.metrics.CheckoutSession(metrics.OutcomeCreated)
	s.log.InfoContext(ctx, "checkout session created",
		"session_id", session.ID, "club_id", clubID, "amount_minor", amount)
	return session.URL, nil
}

// Confirm reconciles a checkout session into a membership and a payment.
// It is safe to call repeatedly for the same session.
func (s *Service) Confirm(ctx context.Context, sessionID string) (*Result, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrInvalidRequest)
	}

	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.metrics.Confirmation(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrGatewayLookup, err)
	}

	transactionID := session.PaymentIntentID
	if transactionID == "" && session.PaymentStatus == gatewayStatusPaid {
		transactionID = session.ID
	}
	log := s.log.With("session_id", session.ID, "transaction_id", transactionID)

	if transactionID != "" {
		existing, err := s.store.FindPaymentByTransactionID(ctx, transactionID)
		if err != nil {
			s.metrics.Confirmation(metrics.OutcomeError)
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
		if existing != nil {
			log.InfoContext(ctx, "payment already processed")
			return s.alreadyProcessed(existing), nil
		}
	}

	if session.PaymentStatus != gatewayStatusPaid {
		s.metrics.Confirmation(metrics.OutcomeNotPaid)
		log.InfoContext(ctx, "payment not completed", "payment_status", session.PaymentStatus)
		return &Result{
			Success:       false,
			Message:       "Payment not completed",
			PaymentStatus: session.PaymentStatus,
		}, nil
	}

	clubID := session.Metadata[MetaClubID]
	clubName := session.Metadata[MetaClubName]
	email := users.NormalizeEmail(session.Metadata[MetaUserEmail])
	if email == "" {
		email = users.NormalizeEmail(session.CustomerEmail)
	}
	if clubID == "" || email == "" {
		s.metrics.Confirmation(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: session %s carries no club or payer", ErrInvalidRequest, session.ID)
	}

	now := s.now()
	amount := ToMajorUnits(session.AmountTotal)

	m := &membership.Membership{
		ID:            s.newID(),
		ClubID:        clubID,
		ClubName:      clubName,
		Email:         email,
		TransactionID: transactionID,
		MembershipFee: amount,
		Status:        membership.StatusActive,
		JoinedAt:      now,
	}
	p := &billing.Payment{
		ID:            s.newID(),
		Amount:        amount,
		CustomerEmail: email,
		ClubID:        clubID,
		ClubName:      clubName,
		TransactionID: transactionID,
		PaymentStatus: billing.StatusPaid,
		PaidAt:        now,
	}

	if err := s.store.CreateMembershipWithPayment(ctx, m, p); err != nil {
		if !errors.Is(err, billing.ErrDuplicateTransaction) {
			s.metrics.Confirmation(metrics.OutcomeError)
			log.ErrorContext(ctx, "failed to record membership", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}

		// A concurrent confirmation won the insert.
		existing, lookupErr := s.store.FindPaymentByTransactionID(ctx, transactionID)
		if lookupErr != nil || existing == nil {
			s.metrics.Confirmation(metrics.OutcomeError)
			return nil, fmt.Errorf("%w: reload after duplicate: %v", ErrPersistence, lookupErr)
		}
		log.InfoContext(ctx, "payment recorded concurrently")
		return s.alreadyProcessed(existing), nil
	}

	s.metrics.Confirmation(metrics.OutcomeCreated)
	log.InfoContext(ctx, "membership activated", "club_id", clubID, "amount", amount)

	return &Result{
		Success:       true,
		Message:       "Payment successful and membership activated",
		TransactionID: transactionID,
		PaymentStatus: billing.StatusPaid,
		Membership:    m.ID,
		Payment:       p.ID,
	}, nil
}

func (s *Service) alreadyProcessed(p *billing.Payment) *Result {
	s.metrics.Confirmation(metrics.OutcomeAlreadyProcessed)
	return &Result{
		Success:          true,
		Message:          "Payment already processed",
		AlreadyProcessed: true,
		TransactionID:    p.TransactionID,
		PaymentStatus:    p.PaymentStatus,
		Payment:          p.ID,
	}
}

// JoinFree grants a membership in a club that charges no fee. Free records
// share the "none" transaction id, so the paid-transaction guard never sees them.
func (s *Service) JoinFree(ctx context.Context, req JoinRequest) (*JoinResult, error) {
	clubID := strings.TrimSpace(req.ClubID)
	clubName := strings.TrimSpace(req.ClubName)
	email := users.NormalizeEmail(req.Email)
	if clubID == "" || clubName == "" || email == "" {
		s.metrics.FreeJoin(metrics.OutcomeRejected)
		return nil, fmt.Errorf("%w: clubId, clubName and email are required", ErrInvalidRequest)
	}

	existing, err := s.store.FindActiveMembership(ctx, email, clubID)
	if err != nil {
		s.metrics.FreeJoin(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if existing != nil {
		s.metrics.FreeJoin(metrics.OutcomeAlreadyMember)
		return &JoinResult{
			Success:       true,
			Message:       "Already a member of this club",
			AlreadyMember: true,
			Membership:    existing.ID,
		}, nil
	}

	now := s.now()
	m := &membership.Membership{
		ID:            s.newID(),
		ClubID:        clubID,
		ClubName:      clubName,
		Email:         email,
		TransactionID: billing.TransactionNone,
		Status:        membership.StatusActive,
		JoinedAt:      now,
	}
	p := &billing.Payment{
		ID:            s.newID(),
		CustomerEmail: email,
		ClubID:        clubID,
		ClubName:      clubName,
		TransactionID: billing.TransactionNone,
		PaymentStatus: billing.StatusFree,
		PaidAt:        now,
	}
	if err := s.store.CreateMembershipWithPayment(ctx, m, p); err != nil {
		s.metrics.FreeJoin(metrics.OutcomeError)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.metrics.FreeJoin(metrics.OutcomeCreated)
	s.log.InfoContext(ctx, "free membership created", "club_id", clubID)

	return &JoinResult{
		Success:    true,
		Message:    "Joined club successfully",
		Membership: m.ID,
		Payment:    p.ID,
	}, nil
}
