package store

import (
	"context"
	"errors"
	"fmt"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/membership"

	"gorm.io/gorm"
)

func (s *Store) FindPaymentByTransactionID(ctx context.Context, transactionID string) (*billing.Payment, error) {
	var p billing.Payment
	found, err := first(s.db.WithContext(ctx).Where("transaction_id = ?", transactionID), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// FindPaymentByEmailAndClub returns the most recent payment of email for clubID.
func (s *Store) FindPaymentByEmailAndClub(ctx context.Context, email, clubID string) (*billing.Payment, error) {
	var p billing.Payment
	found, err := first(s.db.WithContext(ctx).
		Where("customer_email = ? AND club_id = ?", email, clubID).
		Order("paid_at DESC"), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (s *Store) ListPaymentsByEmail(ctx context.Context, email string) ([]billing.Payment, error) {
	payments := []billing.Payment{}
	err := s.db.WithContext(ctx).
		Where("customer_email = ?", email).
		Order("paid_at DESC").
		Find(&payments).Error
	return payments, err
}

func (s *Store) ListPayments(ctx context.Context) ([]billing.Payment, error) {
	payments := []billing.Payment{}
	err := s.db.WithContext(ctx).Order("paid_at DESC").Find(&payments).Error
	return payments, err
}

// CreateMembershipWithPayment inserts both records in one transaction.
// The transaction_id unique indexes turn a concurrent duplicate into
// billing.ErrDuplicateTransaction.
func (s *Store) CreateMembershipWithPayment(ctx context.Context, m *membership.Membership, p *billing.Payment) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return tx.Create(m).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", billing.ErrDuplicateTransaction, p.TransactionID)
	}
	return err
}
