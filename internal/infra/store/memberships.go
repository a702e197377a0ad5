package store

import (
	"context"

	"clubero-server/internal/domain/membership"
)

func (s *Store) FindActiveMembership(ctx context.Context, email, clubID string) (*membership.Membership, error) {
	var m membership.Membership
	found, err := first(s.db.WithContext(ctx).
		Where("email = ? AND club_id = ? AND status = ?", email, clubID, membership.StatusActive), &m)
	if err != nil || !found {
		return nil, err
	}
	return &m, nil
}

func (s *Store) ListMembershipsByEmail(ctx context.Context, email string) ([]membership.Membership, error) {
	out := []membership.Membership{}
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("joined_at DESC").
		Find(&out).Error
	return out, err
}
