package remittance

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rem *Remittance) error
	UpdateReview(ctx context.Context, rem *Remittance) error
	FindByID(ctx context.Context, id int64) (*Remittance, error)
	FindAll(ctx context.Context, status string) ([]Remittance, error)
}

type repository struct {
	db  *sql.DB
	gdb *gorm.DB
	tx  *sql.Tx
}

func NewRepository(db *sql.DB, gdb *gorm.DB) Repository {
	return &repository{db: db, gdb: gdb}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, gdb: r.gdb, tx: tx}
}

// Create inserts the remittance through the raw connection so it shares the
// caller's transaction with the outbox insert.
func (r *repository) Create(ctx context.Context, rem *Remittance) error {
	query := `
        INSERT INTO remittances (
            fee_id, account_id, amount_remitted, status, remittance_date, note
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING remittance_id
    `

	return r.conn().QueryRowContext(
		ctx, query,
		rem.FeeID, rem.AccountID, rem.AmountRemitted,
		rem.Status, rem.RemittanceDate, rem.Note,
	).Scan(&rem.RemittanceID)
}

func (r *repository) UpdateReview(ctx context.Context, rem *Remittance) error {
	query := `
        UPDATE remittances
        SET status = $2, verified_by = $3, verified_at = $4, updated_at = NOW()
        WHERE remittance_id = $1
    `

	result, err := r.conn().ExecContext(ctx, query, rem.RemittanceID, rem.Status, rem.VerifiedBy, rem.VerifiedAt)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Remittance, error) {
	var rem Remittance
	if err := r.gdb.WithContext(ctx).First(&rem, "remittance_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *repository) FindAll(ctx context.Context, status string) ([]Remittance, error) {
	var rems []Remittance

	query := r.gdb.WithContext(ctx).Order("remittance_date DESC, remittance_id DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&rems).Error; err != nil {
		return nil, err
	}
	return rems, nil
}

func (r *repository) conn() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
