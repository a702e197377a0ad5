package users

import "time"

type MeResponse struct {
	User        UserDTO         `json:"user"`
	Memberships []MembershipDTO `json:"memberships"`
}

type UserDTO struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	PhotoURL *string `json:"photoURL"`
	Role     string  `json:"role"`
}

type MembershipDTO struct {
	ClubID   string    `json:"clubId"`
	ClubName string    `json:"clubName"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}
