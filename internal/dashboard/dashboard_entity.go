package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Read-only snapshot rows. The dashboard never writes; each struct carries
// exactly the columns the aggregations consume.

type PaymentSnapshot struct {
	PaymentID   int64
	FeeID       int64
	StudentID   string
	Status      string
	PaymentDate *time.Time
	FeeType     string
	FeeAmount   decimal.Decimal
}

type RemittanceSnapshot struct {
	RemittanceID   int64
	FeeID          int64
	AccountID      int64
	Status         string
	AmountRemitted decimal.Decimal
	RemittanceDate *time.Time
	FeeType        string
}

type ExpenseSnapshot struct {
	ExpenseID      int64
	Category       string
	Amount         decimal.Decimal
	ApprovalStatus string
	ExpenseStatus  string
	RelatedFeeID   *int64
	ExpenseDate    *time.Time
}

type FeeSnapshot struct {
	FeeID   int64
	FeeType string
	Amount  decimal.Decimal
}

type TreasurerAccount struct {
	AccountID int64
	Email     string
	LastName  string
	FirstName string
	StudentID *string
	ProgramID *string
	YearLevel *int
	Section   *string
}

type Classmate struct {
	StudentID string
	LastName  string
	FirstName string
}
