package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const RemittanceLifecycleTopic = "org.remittance.lifecycle.v1"

const (
	RemittanceSubmittedType = "remittance.submitted"
	RemittanceVerifiedType  = "remittance.verified"
	RemittanceRejectedType  = "remittance.rejected"
)

// RemittanceLifecycleEvent is consumed by the external notification scheduler
// that mails treasurers about remittance state changes.
type RemittanceLifecycleEvent struct {
	EventType      string          `json:"event_type"`
	RemittanceID   int64           `json:"remittance_id"`
	FeeID          int64           `json:"fee_id"`
	AccountID      int64           `json:"account_id"`
	AmountRemitted decimal.Decimal `json:"amount_remitted"`
	Status         string          `json:"status"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
