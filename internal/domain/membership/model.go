package membership

import "time"

const StatusActive = "active"

type Membership struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClubID        string    `gorm:"not null;index:idx_membership_email_club,priority:2" json:"clubId"`
	ClubName      string    `json:"clubName"`
	Email         string    `gorm:"not null;index:idx_membership_email_club,priority:1" json:"email"`
	TransactionID string    `gorm:"not null;uniqueIndex:idx_membership_transaction_id,where:transaction_id <> 'none'" json:"transactionId"`
	MembershipFee float64   `gorm:"not null" json:"membershipFee"`
	Status        string    `gorm:"not null;index" json:"status"`
	JoinedAt      time.Time `json:"joinedAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName keeps the collection name the web client already queries.
func (Membership) TableName() string { return "membership" }
