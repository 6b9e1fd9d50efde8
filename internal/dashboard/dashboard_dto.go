package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

type StatusBucket struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type TransactionEntry struct {
	Type        string          `json:"type"` // payment | expense | remittance
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Date        *time.Time      `json:"date,omitempty"`
}

type AdminDashboardSummary struct {
	PaymentsByStatus           map[string]StatusBucket `json:"payments_by_status"`
	PaymentsByRemittanceStatus map[string]StatusBucket `json:"payments_by_remittance_status"`
	RecentTransactions         []TransactionEntry      `json:"recent_transactions"`
}

type FeeUtilization struct {
	FeeID          int64           `json:"fee_id"`
	FeeType        string          `json:"fee_type"`
	TotalCollected decimal.Decimal `json:"total_collected"`
	TotalRemitted  decimal.Decimal `json:"total_remitted"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetBalance     decimal.Decimal `json:"net_balance"`
}

type ClassmateFeeStatus struct {
	FeeID      int64           `json:"fee_id"`
	FeeType    string          `json:"fee_type"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	AmountDue  decimal.Decimal `json:"amount_due"`
	Status     string          `json:"status"` // Paid | Partially Paid | Not Paid
}

type ClassmateSummary struct {
	StudentID string               `json:"student_id"`
	LastName  string               `json:"last_name"`
	FirstName string               `json:"first_name"`
	Fees      []ClassmateFeeStatus `json:"fees"`
}

type ClassSummary struct {
	ProgramID string             `json:"program_id"`
	YearLevel int                `json:"year_level"`
	Section   string             `json:"section"`
	Students  []ClassmateSummary `json:"students"`
}
