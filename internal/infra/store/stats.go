package store

import (
	"context"
	"time"

	"clubero-server/internal/domain/billing"
	"clubero-server/internal/domain/membership"
	"clubero-server/internal/domain/users"
)

type AdminStats struct {
	TotalUsers       int64            `json:"totalUsers"`
	TotalMemberships int64            `json:"totalMemberships"`
	TotalRevenue     float64          `json:"totalRevenue"`
	RecentRevenue    float64          `json:"recentRevenue"`
	MembersPerClub   map[string]int64 `json:"membersPerClub"`
}

type ClubSummary struct {
	ClubID         string            `json:"clubId"`
	ActiveMembers  int64             `json:"activeMembers"`
	Revenue        float64           `json:"revenue"`
	RecentPayments []billing.Payment `json:"recentPayments"`
}

// AdminStats aggregates the dashboard numbers; revenue counts paid
// payments only, "recent" is anything paid at or after since.
func (s *Store) AdminStats(ctx context.Context, since time.Time) (*AdminStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminStats{MembersPerClub: map[string]int64{}}

	if err := db.Model(&users.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&membership.Membership{}).
		Where("status = ?", membership.StatusActive).
		Count(&stats.TotalMemberships).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&billing.Payment{}).
		Where("payment_status = ?", billing.StatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&billing.Payment{}).
		Where("payment_status = ? AND paid_at >= ?", billing.StatusPaid, since).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.RecentRevenue).Error; err != nil {
		return nil, err
	}

	var counts []struct {
		ClubName string
		Count    int64
	}
	if err := db.Model(&membership.Membership{}).
		Select("club_name, COUNT(id) AS count").
		Where("status = ?", membership.StatusActive).
		Group("club_name").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.MembersPerClub[c.ClubName] = c.Count
	}

	return stats, nil
}

func (s *Store) ClubSummary(ctx context.Context, clubID string, recent int) (*ClubSummary, error) {
	db := s.db.WithContext(ctx)
	sum := &ClubSummary{ClubID: clubID, RecentPayments: []billing.Payment{}}

	if err := db.Model(&membership.Membership{}).
		Where("club_id = ? AND status = ?", clubID, membership.StatusActive).
		Count(&sum.ActiveMembers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&billing.Payment{}).
		Where("club_id = ? AND payment_status = ?", clubID, billing.StatusPaid).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum.Revenue).Error; err != nil {
		return nil, err
	}
	if err := db.Where("club_id = ?", clubID).
		Order("paid_at DESC").
		Limit(recent).
		Find(&sum.RecentPayments).Error; err != nil {
		return nil, err
	}
	return sum, nil
}
