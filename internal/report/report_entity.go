package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasurerRow is the stage-1 scan target: one class-treasurer account joined
// with its student's class identity and a naive per-fee remittance aggregate.
// The HasRemittance flag and summed amount come straight from the database and
// are corrected during enrichment.
type TreasurerRow struct {
	AccountID      int64
	LastName       string
	FirstName      string
	Email          string
	StudentID      *string
	ProgramID      *string
	ProgramName    *string
	YearLevel      *int
	Section        *string
	AmountRemitted decimal.Decimal
	HasRemittance  bool
}

type classCountRow struct {
	ProgramID string
	YearLevel int
	Section   string
	Total     int
}

type latestRemittanceRow struct {
	AccountID  int64
	LatestDate time.Time
}
