package checkout

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metadata keys written on every checkout session so confirmation can
// recover context from the session alone.
const (
	MetaClubID    = "clubId"
	MetaClubName  = "clubName"
	MetaUserEmail = "userEmail"
)

const gatewayStatusPaid = "paid"

// Amount is a major-unit money value. It accepts a JSON string ("250")
// or a JSON number (250).
type Amount string

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("membershipFee: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

type CheckoutRequest struct {
	ClubID        string `json:"clubId"`
	ClubName      string `json:"clubName"`
	MembershipFee Amount `json:"membershipFee"`
	Email         string `json:"email"`
}

type JoinRequest struct {
	ClubID   string `json:"clubId"`
	ClubName string `json:"clubName"`
	Email    string `json:"email"`
}

// SessionRequest is what the gateway needs to open a checkout session.
// Currency and redirect URLs are gateway configuration.
type SessionRequest struct {
	ProductName   string
	AmountMinor   int64
	CustomerEmail string
	Metadata      map[string]string
}

// Session is the gateway-owned view of a checkout session.
type Session struct {
	ID              string
	URL             string
	PaymentIntentID string
	PaymentStatus   string
	AmountTotal     int64
	CustomerEmail   string
	Metadata        map[string]string
}

// Result of a confirmation. Non-success outcomes are results, not errors.
type Result struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	AlreadyProcessed bool   `json:"alreadyProcessed,omitempty"`
	TransactionID    string `json:"transactionId,omitempty"`
	PaymentStatus    string `json:"paymentStatus,omitempty"`
	Membership       string `json:"membership,omitempty"`
	Payment          string `json:"payment,omitempty"`
}

type JoinResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	AlreadyMember bool   `json:"alreadyMember,omitempty"`
	Membership    string `json:"membership,omitempty"`
	Payment       string `json:"payment,omitempty"`
}
