package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReportRow is the ephemeral join of account, student, program, computed
// status and remittance aggregates for one fee. Nothing in it is persisted.
type ReportRow struct {
	AccountID      int64           `json:"account_id"`
	LastName       string          `json:"last_name"`
	FirstName      string          `json:"first_name"`
	Email          string          `json:"email"`
	ProgramID      *string         `json:"program_id,omitempty"`
	ProgramName    *string         `json:"program_name,omitempty"`
	YearLevel      *int            `json:"year_level,omitempty"`
	Section        *string         `json:"section,omitempty"`
	FeeID          int64           `json:"fee_id"`
	FeeType        string          `json:"fee_type"`
	AmountRemitted decimal.Decimal `json:"amount_remitted"`
	Status         RemitStatus     `json:"status"`
	RemittanceDate *time.Time      `json:"remittance_date,omitempty"`
}

type PagedReport struct {
	Rows          []ReportRow
	TotalElements int64
}

// SortKey is one (field, direction) pair of a multi-key sort specification.
type SortKey struct {
	Field string
	Desc  bool
}

type PageQuery struct {
	FeeID     int64
	Page      int
	Size      int
	SortField string
	SortDir   string
	Program   string
	Year      string
	Section   string
}

type ReportQuery struct {
	FeeID        int64
	Program      string
	Year         string
	Section      string
	StatusFilter string
	Sort         []SortKey
}

// Filters is the normalized program/year/section restriction. A nil field
// means no restriction.
type Filters struct {
	ProgramID *string
	YearLevel *int
	Section   *string
}

const filterAll = "all"

// ParseFilters normalizes raw filter values. The "all" sentinel, empty
// strings and an unparseable year level all mean "no restriction" rather
// than an error.
func ParseFilters(program, year, section string) Filters {
	var f Filters

	if program != "" && !strings.EqualFold(program, filterAll) {
		f.ProgramID = &program
	}
	if year != "" && !strings.EqualFold(year, filterAll) {
		if level, err := strconv.Atoi(year); err == nil {
			f.YearLevel = &level
		}
	}
	if section != "" && !strings.EqualFold(section, filterAll) {
		f.Section = &section
	}

	return f
}
