package fee

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindAll(ctx context.Context) ([]Fee, error)
	FindByID(ctx context.Context, id int64) (*Fee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context) ([]Fee, error) {
	var fees []Fee
	err := r.db.WithContext(ctx).
		Order("due_date ASC NULLS LAST, fee_type ASC").
		Find(&fees).Error
	return fees, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Fee, error) {
	var f Fee
	err := r.db.WithContext(ctx).First(&f, "fee_id = ?", id).Error
	return &f, err
}
