package report

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"transparency/internal/domain"
	"transparency/internal/fee"
	reporterrors "transparency/internal/report/errors"

	"gorm.io/gorm"
)

type Service interface {
	BuildPage(ctx context.Context, q PageQuery) (PagedReport, error)
	BuildReport(ctx context.Context, q ReportQuery) ([]ReportRow, error)
}

type service struct {
	repo Repository
	fees fee.Repository
}

func NewService(repo Repository, fees fee.Repository) Service {
	return &service{repo: repo, fees: fees}
}

// BuildPage assembles one page of the remittance-status report for a fee.
//
// Stage 1 pages class-treasurer accounts with a naive DB-level remittance
// aggregate and the unpaginated filtered count. Stage 2 corrects the naive
// flag into COMPLETED/PARTIAL/NOT_REMITTED using batched class counts.
// The final sort is applied to the fetched page only; totalElements is the
// stage-1 count regardless of page, size or sort field.
func (s *service) BuildPage(ctx context.Context, q PageQuery) (PagedReport, error) {
	feeRow, err := s.fees.FindByID(ctx, q.FeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PagedReport{}, reporterrors.ErrFeeNotFound
		}
		return PagedReport{}, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size < 1 {
		size = 10
	}

	f := ParseFilters(q.Program, q.Year, q.Section)

	rows, total, err := s.repo.FindTreasurerPage(ctx, q.FeeID, f, (page-1)*size, size)
	if err != nil {
		return PagedReport{}, err
	}

	report, err := s.enrich(ctx, *feeRow, rows)
	if err != nil {
		return PagedReport{}, err
	}

	sortPage(report, q.SortField, strings.EqualFold(q.SortDir, "desc"))

	return PagedReport{Rows: report, TotalElements: total}, nil
}

// enrich resolves each row's class identity, replaces the naive remittance
// flag with the computed status and attaches the most recent remittance date.
// A row without a linked student or program stays NOT_REMITTED; a missing
// date resolves to nil. One bad row never fails the batch.
func (s *service) enrich(ctx context.Context, feeRow fee.Fee, rows []TreasurerRow) ([]ReportRow, error) {
	classSet := make(map[domain.ClassIdentity]struct{}, len(rows))
	for _, row := range rows {
		if class, ok := classOf(row); ok {
			classSet[class] = struct{}{}
		}
	}

	classes := make([]domain.ClassIdentity, 0, len(classSet))
	for class := range classSet {
		classes = append(classes, class)
	}

	totals, err := s.repo.CountStudentsByClass(ctx, classes)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.CountPaidStudentsByClass(ctx, feeRow.FeeID, classes)
	if err != nil {
		return nil, err
	}

	report := make([]ReportRow, len(rows))
	remitted := make([]int64, 0, len(rows))
	for i, row := range rows {
		status := StatusNotRemitted
		if class, ok := classOf(row); ok {
			status = CalculateStatus(row.HasRemittance, totals[class], paid[class])
		}

		report[i] = ReportRow{
			AccountID:      row.AccountID,
			LastName:       row.LastName,
			FirstName:      row.FirstName,
			Email:          row.Email,
			ProgramID:      row.ProgramID,
			ProgramName:    row.ProgramName,
			YearLevel:      row.YearLevel,
			Section:        row.Section,
			FeeID:          feeRow.FeeID,
			FeeType:        feeRow.FeeType,
			AmountRemitted: row.AmountRemitted,
			Status:         status,
		}

		if status != StatusNotRemitted {
			remitted = append(remitted, row.AccountID)
		}
	}

	dates, err := s.repo.LatestRemittanceDates(ctx, feeRow.FeeID, remitted)
	if err != nil {
		return nil, err
	}
	for i := range report {
		if report[i].Status == StatusNotRemitted {
			continue
		}
		if d, ok := dates[report[i].AccountID]; ok {
			date := d
			report[i].RemittanceDate = &date
		}
	}

	return report, nil
}

func classOf(row TreasurerRow) (domain.ClassIdentity, bool) {
	if row.ProgramID == nil || row.YearLevel == nil || row.Section == nil {
		return domain.ClassIdentity{}, false
	}
	return domain.ClassIdentity{
		ProgramID: *row.ProgramID,
		YearLevel: *row.YearLevel,
		Section:   *row.Section,
	}, true
}

// Page sort fields. Unrecognized fields fall back to the last-name compare.
const (
	SortAmountRemitted = "amountRemitted"
	SortStatus         = "status"
	SortFeeType        = "feeType"
	SortRemittanceDate = "remittanceDate"
	SortUserName       = "userName"
	SortProgramName    = "programName"
	SortYearSection    = "yearSection"
)

func sortPage(rows []ReportRow, field string, desc bool) {
	cmp := pageComparator(field)
	sort.SliceStable(rows, func(i, j int) bool {
		return cmp(rows[i], rows[j], desc) < 0
	})
}

func pageComparator(field string) func(a, b ReportRow, desc bool) int {
	switch field {
	case SortAmountRemitted:
		return func(a, b ReportRow, desc bool) int {
			return flip(a.AmountRemitted.Cmp(b.AmountRemitted), desc)
		}
	case SortStatus:
		return func(a, b ReportRow, desc bool) int {
			return flip(strings.Compare(string(a.Status), string(b.Status)), desc)
		}
	case SortFeeType:
		return func(a, b ReportRow, desc bool) int {
			return flip(strings.Compare(a.FeeType, b.FeeType), desc)
		}
	case SortRemittanceDate:
		return func(a, b ReportRow, desc bool) int {
			return compareDatePtr(a.RemittanceDate, b.RemittanceDate, desc)
		}
	case SortUserName:
		return func(a, b ReportRow, desc bool) int {
			return flip(strings.Compare(a.LastName+a.FirstName, b.LastName+b.FirstName), desc)
		}
	case SortProgramName:
		return func(a, b ReportRow, desc bool) int {
			return compareOptionalStr(a.ProgramName, b.ProgramName, desc)
		}
	case SortYearSection:
		return func(a, b ReportRow, desc bool) int {
			ka, aok := yearSectionKey(a)
			kb, bok := yearSectionKey(b)
			if !aok || !bok {
				return 0
			}
			return flip(strings.Compare(ka, kb), desc)
		}
	default:
		return func(a, b ReportRow, desc bool) int {
			return flip(strings.Compare(a.LastName, b.LastName), desc)
		}
	}
}

func flip(c int, desc bool) int {
	if desc {
		return -c
	}
	return c
}

// compareDatePtr treats a nil date as older than any concrete date no matter
// the direction; only concrete pairs flip with desc.
func compareDatePtr(a, b *time.Time, desc bool) int {
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
	case a.Before(*b):
		return flip(-1, desc)
	case a.After(*b):
		return flip(1, desc)
	default:
		return 0
	}
}

// compareOptionalStr degrades to "equal" when either side is missing the
// nested value, so one bad row cannot abort the page sort.
func compareOptionalStr(a, b *string, desc bool) int {
	if a == nil || b == nil {
		return 0
	}
	return flip(strings.Compare(*a, *b), desc)
}

func yearSectionKey(r ReportRow) (string, bool) {
	if r.YearLevel == nil || r.Section == nil {
		return "", false
	}
	return strconv.Itoa(*r.YearLevel) + "-" + *r.Section, true
}
