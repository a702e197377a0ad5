package billing

import "time"

const (
	StatusPaid = "paid"
	StatusFree = "free"

	// TransactionNone marks free memberships. It is excluded from the
	// transaction_id unique index.
	TransactionNone = "none"
)

type Payment struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	CustomerEmail string    `gorm:"not null;index:idx_payments_email_club,priority:1" json:"customerEmail"`
	ClubID        string    `gorm:"not null;index:idx_payments_email_club,priority:2" json:"clubId"`
	ClubName      string    `json:"clubName"`
	TransactionID string    `gorm:"not null;uniqueIndex:idx_payments_transaction_id,where:transaction_id <> 'none'" json:"transactionId"`
	PaymentStatus string    `gorm:"not null" json:"paymentStatus"`
	PaidAt        time.Time `json:"paidAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Payment) TableName() string { return "payments" }
