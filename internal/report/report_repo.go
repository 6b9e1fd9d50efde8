package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"transparency/internal/domain"

	"gorm.io/gorm"
)

// Repository is the read-only persistence surface of the reporting engine.
// The per-class and per-account lookups are batched so a report issues a
// bounded number of queries regardless of how many rows it matches.
type Repository interface {
	FindTreasurerPage(ctx context.Context, feeID int64, f Filters, offset, limit int) ([]TreasurerRow, int64, error)
	FindAllTreasurers(ctx context.Context, feeID int64, f Filters) ([]TreasurerRow, error)
	CountStudentsByClass(ctx context.Context, classes []domain.ClassIdentity) (map[domain.ClassIdentity]int, error)
	CountPaidStudentsByClass(ctx context.Context, feeID int64, classes []domain.ClassIdentity) (map[domain.ClassIdentity]int, error)
	LatestRemittanceDates(ctx context.Context, feeID int64, accountIDs []int64) (map[int64]time.Time, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const treasurerSelect = `
SELECT
	a.account_id,
	a.last_name,
	a.first_name,
	a.email,
	s.student_id,
	s.program_id,
	p.program_name,
	s.year_level,
	s.section,
	COALESCE(r.amount_remitted, 0) AS amount_remitted,
	COALESCE(r.has_remittance, FALSE) AS has_remittance
`

const treasurerFrom = `
FROM accounts a
LEFT JOIN students s ON s.student_id = a.student_id
LEFT JOIN programs p ON p.program_id = s.program_id
LEFT JOIN (
	SELECT account_id, SUM(amount_remitted) AS amount_remitted, TRUE AS has_remittance
	FROM remittances
	WHERE fee_id = ?
	GROUP BY account_id
) r ON r.account_id = a.account_id
WHERE a.role = ?
`

func appendFilterConds(query string, args []any, f Filters) (string, []any) {
	if f.ProgramID != nil {
		query += " AND s.program_id = ?"
		args = append(args, *f.ProgramID)
	}
	if f.YearLevel != nil {
		query += " AND s.year_level = ?"
		args = append(args, *f.YearLevel)
	}
	if f.Section != nil {
		query += " AND s.section = ?"
		args = append(args, *f.Section)
	}
	return query, args
}

func (r *repository) FindTreasurerPage(
	ctx context.Context,
	feeID int64,
	f Filters,
	offset, limit int,
) ([]TreasurerRow, int64, error) {
	from, args := appendFilterConds(treasurerFrom, []any{feeID, domain.RoleClassTreasurer}, f)

	var total int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) "+from, args...).
		Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := treasurerSelect + from + " ORDER BY a.last_name ASC, a.first_name ASC OFFSET ? LIMIT ?"
	pageArgs := append(args, offset, limit)

	var rows []TreasurerRow
	if err := r.db.WithContext(ctx).Raw(query, pageArgs...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *repository) FindAllTreasurers(
	ctx context.Context,
	feeID int64,
	f Filters,
) ([]TreasurerRow, error) {
	from, args := appendFilterConds(treasurerFrom, []any{feeID, domain.RoleClassTreasurer}, f)
	query := treasurerSelect + from + " ORDER BY a.last_name ASC, a.first_name ASC"

	var rows []TreasurerRow
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *repository) CountStudentsByClass(
	ctx context.Context,
	classes []domain.ClassIdentity,
) (map[domain.ClassIdentity]int, error) {
	counts := make(map[domain.ClassIdentity]int, len(classes))
	if len(classes) == 0 {
		return counts, nil
	}

	cond, args := classTupleCond(classes)
	query := fmt.Sprintf(`
SELECT program_id, year_level, section, COUNT(*) AS total
FROM students
WHERE status = 'Active' AND (program_id, year_level, section) IN (%s)
GROUP BY program_id, year_level, section
`, cond)

	var rows []classCountRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[domain.ClassIdentity{ProgramID: row.ProgramID, YearLevel: row.YearLevel, Section: row.Section}] = row.Total
	}
	return counts, nil
}

func (r *repository) CountPaidStudentsByClass(
	ctx context.Context,
	feeID int64,
	classes []domain.ClassIdentity,
) (map[domain.ClassIdentity]int, error) {
	counts := make(map[domain.ClassIdentity]int, len(classes))
	if len(classes) == 0 {
		return counts, nil
	}

	cond, args := classTupleCond(classes)
	query := fmt.Sprintf(`
SELECT s.program_id, s.year_level, s.section, COUNT(DISTINCT pay.student_id) AS total
FROM payments pay
JOIN students s ON s.student_id = pay.student_id
WHERE pay.fee_id = ? AND pay.status = 'Paid'
	AND (s.program_id, s.year_level, s.section) IN (%s)
GROUP BY s.program_id, s.year_level, s.section
`, cond)

	allArgs := append([]any{feeID}, args...)

	var rows []classCountRow
	if err := r.db.WithContext(ctx).Raw(query, allArgs...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[domain.ClassIdentity{ProgramID: row.ProgramID, YearLevel: row.YearLevel, Section: row.Section}] = row.Total
	}
	return counts, nil
}

func (r *repository) LatestRemittanceDates(
	ctx context.Context,
	feeID int64,
	accountIDs []int64,
) (map[int64]time.Time, error) {
	dates := make(map[int64]time.Time, len(accountIDs))
	if len(accountIDs) == 0 {
		return dates, nil
	}

	query := `
SELECT account_id, MAX(remittance_date) AS latest_date
FROM remittances
WHERE fee_id = ? AND account_id IN ? AND remittance_date IS NOT NULL
GROUP BY account_id
`

	var rows []latestRemittanceRow
	if err := r.db.WithContext(ctx).Raw(query, feeID, accountIDs).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		dates[row.AccountID] = row.LatestDate
	}
	return dates, nil
}

func classTupleCond(classes []domain.ClassIdentity) (string, []any) {
	placeholders := make([]string, 0, len(classes))
	args := make([]any, 0, len(classes)*3)
	for _, c := range classes {
		placeholders = append(placeholders, "(?, ?, ?)")
		args = append(args, c.ProgramID, c.YearLevel, c.Section)
	}
	return strings.Join(placeholders, ", "), args
}
