package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubmitRemittanceRequest struct {
	FeeID          int64   `json:"fee_id" binding:"required"`
	AmountRemitted string  `json:"amount_remitted" binding:"required"`
	RemittanceDate string  `json:"remittance_date"`
	Note           *string `json:"note"`
}

type ReviewRemittanceRequest struct {
	Action string `json:"action" binding:"required,oneof=verify reject"`
}

type RemittanceResponse struct {
	RemittanceID   int64           `json:"remittance_id"`
	FeeID          int64           `json:"fee_id"`
	AccountID      int64           `json:"account_id"`
	AmountRemitted decimal.Decimal `json:"amount_remitted"`
	Status         string          `json:"status"`
	RemittanceDate string          `json:"remittance_date"`
	Note           *string         `json:"note,omitempty"`
	VerifiedBy     *int64          `json:"verified_by,omitempty"`
	VerifiedAt     *time.Time      `json:"verified_at,omitempty"`
}
