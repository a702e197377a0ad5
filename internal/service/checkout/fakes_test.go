package checkout

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/membership"

	"github.com/stretchr/testify/mock"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (*Session, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*Session)
	return s, args.Error(1)
}

func (m *mockGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*Session, error) {
	args := m.Called(ctx, sessionID)
	s, _ := args.Get(0).(*Session)
	return s, args.Error(1)
}

// memStore enforces the same transaction id uniqueness as the database.
type memStore struct {
	mu          sync.Mutex
	payments    []billing.Payment
	memberships []membership.Membership

	findErr   error
	createErr error
	creates   int
	// hideOnce makes the next transaction lookup miss, simulating a
	// concurrent confirmation that passed the guard at the same time.
	hideOnce bool
}

func (s *memStore) FindPaymentByTransactionID(_ context.Context, transactionID string) (*billing.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.hideOnce {
		s.hideOnce = false
		return nil, nil
	}
	for i := range s.payments {
		if s.payments[i].TransactionID == transactionID {
			p := s.payments[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindActiveMembership(_ context.Context, email, clubID string) (*membership.Membership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.memberships {
		m := s.memberships[i]
		if m.Email == email && m.ClubID == clubID && m.Status == membership.StatusActive {
			return &m, nil
		}
	}
	return nil, nil
}

func (s *memStore) CreateMembershipWithPayment(_ context.Context, m *membership.Membership, p *billing.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++
	if s.createErr != nil {
		return s.createErr
	}
	if p.TransactionID != billing.TransactionNone {
		for _, existing := range s.payments {
			if existing.TransactionID == p.TransactionID {
				return billing.ErrDuplicateTransaction
			}
		}
	}
	s.memberships = append(s.memberships, *m)
	s.payments = append(s.payments, *p)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
