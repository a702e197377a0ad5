package store

import (
	"context"

	"clubero-server/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	found, err := first(s.db.WithContext(ctx).Where("email = ?", email), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

// UpsertUser creates the profile for u.Email with the member role, or
// refreshes name and photo of an existing one. The stored role is never
// changed here.
func (s *Store) UpsertUser(ctx context.Context, u *users.User) (*users.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = users.RoleMember
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "photo_url", "updated_at"}),
	}).Create(u).Error
	if err != nil {
		return nil, err
	}
	return s.FindUserByEmail(ctx, u.Email)
}

// SetUserRole reports false when no user has the given id.
func (s *Store) SetUserRole(ctx context.Context, id, role string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&users.User{}).Where("id = ?", id).Update("role", role)
	return res.RowsAffected > 0, res.Error
}

func (s *Store) ListUsers(ctx context.Context) ([]users.User, error) {
	out := []users.User{}
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}
