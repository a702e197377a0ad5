package users

import (
	"clubero-server/internal/domain/membership"
	"clubero-server/internal/domain/users"
)

func buildUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		PhotoURL: stringPtrIfNotEmpty(u.PhotoURL),
		Role:     u.Role,
	}
}

// Only active memberships are listed on the profile.
func buildMembershipDTOs(list []membership.Membership) []MembershipDTO {
	out := make([]MembershipDTO, 0, len(list))
	for _, m := range list {
		if m.Status != membership.StatusActive {
			continue
		}
		out = append(out, MembershipDTO{
			ClubID:   m.ClubID,
			ClubName: m.ClubName,
			Status:   m.Status,
			JoinedAt: m.JoinedAt,
		})
	}
	return out
}

func stringPtrIfNotEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
