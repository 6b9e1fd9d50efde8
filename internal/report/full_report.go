package report

import (
	"context"
	"errors"
	"sort"
	"strings"

	reporterrors "transparency/internal/report/errors"

	"gorm.io/gorm"
)

// BuildReport assembles the unpaginated export of the remittance-status
// table. The status filter runs after status computation (it matches the
// derived value, which the data source never sees), and the sort is a
// chained multi-key comparator over the whole result set.
func (s *service) BuildReport(ctx context.Context, q ReportQuery) ([]ReportRow, error) {
	feeRow, err := s.fees.FindByID(ctx, q.FeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reporterrors.ErrFeeNotFound
		}
		return nil, err
	}

	f := ParseFilters(q.Program, q.Year, q.Section)

	rows, err := s.repo.FindAllTreasurers(ctx, q.FeeID, f)
	if err != nil {
		return nil, err
	}

	report, err := s.enrich(ctx, *feeRow, rows)
	if err != nil {
		return nil, err
	}

	if q.StatusFilter != "" && !strings.EqualFold(q.StatusFilter, filterAll) {
		filtered := report[:0]
		for _, row := range report {
			if strings.EqualFold(q.StatusFilter, string(row.Status)) {
				filtered = append(filtered, row)
			}
		}
		report = filtered
	}

	sortReport(report, q.Sort)

	return report, nil
}

// fullReportComparators maps the export's sort field names to typed
// comparators. No reflection: a field name either has an entry here or it
// contributes nothing to the ordering.
var fullReportComparators = map[string]func(a, b ReportRow, desc bool) int{
	"accountId": func(a, b ReportRow, desc bool) int {
		switch {
		case a.AccountID < b.AccountID:
			return flip(-1, desc)
		case a.AccountID > b.AccountID:
			return flip(1, desc)
		default:
			return 0
		}
	},
	"lastName": func(a, b ReportRow, desc bool) int {
		return flip(strings.Compare(a.LastName, b.LastName), desc)
	},
	"firstName": func(a, b ReportRow, desc bool) int {
		return flip(strings.Compare(a.FirstName, b.FirstName), desc)
	},
	"email": func(a, b ReportRow, desc bool) int {
		return flip(strings.Compare(a.Email, b.Email), desc)
	},
	"studentProgramName": func(a, b ReportRow, desc bool) int {
		return compareNullableStr(a.ProgramName, b.ProgramName, desc)
	},
	"studentYearLevel": func(a, b ReportRow, desc bool) int {
		return compareNullableInt(a.YearLevel, b.YearLevel, desc)
	},
	"studentSection": func(a, b ReportRow, desc bool) int {
		return compareNullableStr(a.Section, b.Section, desc)
	},
	"feeType": func(a, b ReportRow, desc bool) int {
		return flip(strings.Compare(a.FeeType, b.FeeType), desc)
	},
	"remittanceStatus": func(a, b ReportRow, desc bool) int {
		return flip(strings.Compare(string(a.Status), string(b.Status)), desc)
	},
}

// sortReport chains the sort keys left to right: the first key decides, ties
// fall through to the next. Unknown field names resolve to "no value" on both
// sides and are skipped, matching the lenient dynamic sorting this replaces.
func sortReport(rows []ReportRow, keys []SortKey) {
	if len(keys) == 0 {
		keys = []SortKey{{Field: "lastName"}}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, key := range keys {
			cmp, ok := fullReportComparators[key.Field]
			if !ok {
				continue
			}
			if c := cmp(rows[i], rows[j], key.Desc); c != 0 {
				return c < 0
			}
		}
		return false
	})
}

// compareNullableStr follows the null convention of the date sort: a missing
// value is always "older" than a present one, direction flips only pairs
// where both sides are present.
func compareNullableStr(a, b *string, desc bool) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	return flip(strings.Compare(*a, *b), desc)
}

func compareNullableInt(a, b *int, desc bool) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	switch {
	case *a < *b:
		return flip(-1, desc)
	case *a > *b:
		return flip(1, desc)
	default:
		return 0
	}
}

// ParseSortSpec turns raw "field" / "field,desc" pairs into sort keys.
// Malformed entries are kept as unknown fields and simply have no effect.
func ParseSortSpec(raw []string) []SortKey {
	keys := make([]SortKey, 0, len(raw))
	for _, item := range raw {
		parts := strings.SplitN(item, ",", 2)
		field := strings.TrimSpace(parts[0])
		if field == "" {
			continue
		}
		key := SortKey{Field: field}
		if len(parts) == 2 {
			key.Desc = strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
		}
		keys = append(keys, key)
	}
	return keys
}
