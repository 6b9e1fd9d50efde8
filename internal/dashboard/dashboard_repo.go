package dashboard

import (
	"context"

	"transparency/internal/domain"

	"gorm.io/gorm"
)

type Repository interface {
	FindAllPayments(ctx context.Context) ([]PaymentSnapshot, error)
	FindAllRemittances(ctx context.Context) ([]RemittanceSnapshot, error)
	FindAllExpenses(ctx context.Context) ([]ExpenseSnapshot, error)
	FindAllFees(ctx context.Context) ([]FeeSnapshot, error)
	FindRecentPayments(ctx context.Context, limit int) ([]PaymentSnapshot, error)
	FindRecentRemittances(ctx context.Context, limit int) ([]RemittanceSnapshot, error)
	FindRecentExpenses(ctx context.Context, limit int) ([]ExpenseSnapshot, error)
	FindTreasurerByEmail(ctx context.Context, email string) (*TreasurerAccount, error)
	FindClassmates(ctx context.Context, class domain.ClassIdentity) ([]Classmate, error)
	FindPaymentsForStudents(ctx context.Context, studentIDs []string) ([]PaymentSnapshot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

const paymentSelect = `
SELECT
	pay.payment_id,
	pay.fee_id,
	pay.student_id,
	pay.status,
	pay.payment_date,
	f.fee_type,
	COALESCE(f.amount, 0) AS fee_amount
FROM payments pay
LEFT JOIN fees f ON f.fee_id = pay.fee_id
`

const remittanceSelect = `
SELECT
	r.remittance_id,
	r.fee_id,
	r.account_id,
	r.status,
	COALESCE(r.amount_remitted, 0) AS amount_remitted,
	r.remittance_date,
	f.fee_type
FROM remittances r
LEFT JOIN fees f ON f.fee_id = r.fee_id
`

func (r *repository) FindAllPayments(ctx context.Context) ([]PaymentSnapshot, error) {
	var rows []PaymentSnapshot
	err := r.db.WithContext(ctx).Raw(paymentSelect).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindAllRemittances(ctx context.Context) ([]RemittanceSnapshot, error) {
	var rows []RemittanceSnapshot
	err := r.db.WithContext(ctx).Raw(remittanceSelect).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindAllExpenses(ctx context.Context) ([]ExpenseSnapshot, error) {
	var rows []ExpenseSnapshot
	err := r.db.WithContext(ctx).
		Raw(`
SELECT expense_id, category, COALESCE(amount, 0) AS amount,
	approval_status, expense_status, related_fee_id, expense_date
FROM expenses
`).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindAllFees(ctx context.Context) ([]FeeSnapshot, error) {
	var rows []FeeSnapshot
	err := r.db.WithContext(ctx).
		Raw(`SELECT fee_id, fee_type, COALESCE(amount, 0) AS amount FROM fees`).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindRecentPayments(ctx context.Context, limit int) ([]PaymentSnapshot, error) {
	var rows []PaymentSnapshot
	err := r.db.WithContext(ctx).
		Raw(paymentSelect+" ORDER BY pay.payment_date DESC NULLS LAST LIMIT ?", limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindRecentRemittances(ctx context.Context, limit int) ([]RemittanceSnapshot, error) {
	var rows []RemittanceSnapshot
	err := r.db.WithContext(ctx).
		Raw(remittanceSelect+" ORDER BY r.remittance_date DESC NULLS LAST LIMIT ?", limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindRecentExpenses(ctx context.Context, limit int) ([]ExpenseSnapshot, error) {
	var rows []ExpenseSnapshot
	err := r.db.WithContext(ctx).
		Raw(`
SELECT expense_id, category, COALESCE(amount, 0) AS amount,
	approval_status, expense_status, related_fee_id, expense_date
FROM expenses
ORDER BY expense_date DESC NULLS LAST
LIMIT ?
`, limit).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindTreasurerByEmail(ctx context.Context, email string) (*TreasurerAccount, error) {
	var account TreasurerAccount
	err := r.db.WithContext(ctx).
		Raw(`
SELECT
	a.account_id,
	a.email,
	a.last_name,
	a.first_name,
	s.student_id,
	s.program_id,
	s.year_level,
	s.section
FROM accounts a
LEFT JOIN students s ON s.student_id = a.student_id
WHERE a.email = ? AND a.role = ?
LIMIT 1
`, email, domain.RoleClassTreasurer).Scan(&account).Error
	if err != nil {
		return nil, err
	}
	if account.AccountID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &account, nil
}

func (r *repository) FindClassmates(ctx context.Context, class domain.ClassIdentity) ([]Classmate, error) {
	var rows []Classmate
	err := r.db.WithContext(ctx).
		Raw(`
SELECT student_id, last_name, first_name
FROM students
WHERE status = 'Active' AND program_id = ? AND year_level = ? AND section = ?
ORDER BY last_name ASC, first_name ASC
`, class.ProgramID, class.YearLevel, class.Section).Scan(&rows).Error
	return rows, err
}

func (r *repository) FindPaymentsForStudents(ctx context.Context, studentIDs []string) ([]PaymentSnapshot, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	var rows []PaymentSnapshot
	err := r.db.WithContext(ctx).
		Raw(paymentSelect+" WHERE pay.student_id IN ?", studentIDs).
		Scan(&rows).Error
	return rows, err
}
