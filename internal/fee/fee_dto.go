package fee

import "github.com/shopspring/decimal"

type FeeResponse struct {
	FeeID   int64           `json:"fee_id"`
	FeeType string          `json:"fee_type"`
	Amount  decimal.Decimal `json:"amount"`
	DueDate *string         `json:"due_date,omitempty"`
}
