package models

import (
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

const (
	PaymentStatusUnpaid    = "unpaid"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
	PaymentStatusRefunded  = "refunded"
)

// PaymentStatuses is the flat allow-list for payment status values. There is
// no transition graph: any allowed value may replace any other.
var PaymentStatuses = []string{
	PaymentStatusUnpaid,
	PaymentStatusPaid,
	PaymentStatusCancelled,
	PaymentStatusRefunded,
}

func IsValidPaymentStatus(status string) bool {
	for _, s := range PaymentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Payment struct {
	ID             string          `json:"id"`
	EventID        string          `json:"event_id"`
	RegistrationID string          `json:"registration_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	PayerName      string          `json:"payer_name"`
	PayerEmail     string          `json:"payer_email"`
	Created        time.Time       `json:"created"`
	Updated        time.Time       `json:"updated"`
}

type CreatePaymentRequest struct {
	RegistrationID string          `json:"registration_id,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PayerName      string          `json:"payer_name"`
	PayerEmail     string          `json:"payer_email"`
}

func (r *CreatePaymentRequest) Validate() error {
	if r.Amount.IsNegative() {
		return &ValidationError{Message: "payment amount cannot be negative"}
	}
	if strings.TrimSpace(r.PayerName) == "" {
		return &ValidationError{Message: "payer_name is required"}
	}
	if strings.TrimSpace(r.PayerEmail) == "" {
		return &ValidationError{Message: "payer_email is required"}
	}
	return nil
}

// PaymentHistoryEntry is one immutable audit record for a payment status
// transition.
type PaymentHistoryEntry struct {
	ID        string    `json:"id"`
	PaymentID string    `json:"payment_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Created   time.Time `json:"created"`
}

func PaymentFromRecord(rec *core.Record) *Payment {
	return &Payment{
		ID:             rec.Id,
		EventID:        rec.GetString("event"),
		RegistrationID: rec.GetString("registration"),
		Amount:         decimal.NewFromFloat(rec.GetFloat("amount")),
		Status:         rec.GetString("status"),
		PayerName:      rec.GetString("payer_name"),
		PayerEmail:     rec.GetString("payer_email"),
		Created:        rec.GetDateTime("created").Time(),
		Updated:        rec.GetDateTime("updated").Time(),
	}
}
