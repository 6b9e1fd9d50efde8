package fee_test

import (
	"context"
	"testing"
	"time"

	"transparency/internal/fee"
	feeerrors "transparency/internal/fee/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeFeeRepository struct {
	findAllFn  func(ctx context.Context) ([]fee.Fee, error)
	findByIDFn func(ctx context.Context, id int64) (*fee.Fee, error)
}

func (f *fakeFeeRepository) FindAll(ctx context.Context) ([]fee.Fee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeFeeRepository) FindByID(ctx context.Context, id int64) (*fee.Fee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func TestFeeService_GetAll(t *testing.T) {
	ctx := context.Background()

	due := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	repo := &fakeFeeRepository{
		findAllFn: func(ctx context.Context) ([]fee.Fee, error) {
			return []fee.Fee{
				{FeeID: 10, FeeType: "College Shirt", Amount: decimal.RequireFromString("150.00"), DueDate: &due},
				{FeeID: 20, FeeType: "Intramurals", Amount: decimal.RequireFromString("300.00")},
			}, nil
		},
	}
	svc := fee.NewService(repo)

	resp, err := svc.GetAll(ctx)

	assert.NoError(t, err)
	assert.Len(t, resp, 2)
	assert.Equal(t, "2026-06-30", *resp[0].DueDate)
	assert.Nil(t, resp[1].DueDate)
}

func TestFeeService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := fee.NewService(&fakeFeeRepository{})

	_, err := svc.GetByID(ctx, 999)

	assert.ErrorIs(t, err, feeerrors.ErrFeeNotFound)
}
