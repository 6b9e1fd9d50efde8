package fee

import (
	"context"
	"errors"

	feeerrors "transparency/internal/fee/errors"

	"gorm.io/gorm"
)

type Service interface {
	GetAll(ctx context.Context) ([]FeeResponse, error)
	GetByID(ctx context.Context, id int64) (FeeResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context) ([]FeeResponse, error) {
	fees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]FeeResponse, len(fees))
	for i, f := range fees {
		resp[i] = mapToResponse(f)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (FeeResponse, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FeeResponse{}, feeerrors.ErrFeeNotFound
		}
		return FeeResponse{}, err
	}

	return mapToResponse(*f), nil
}

func mapToResponse(f Fee) FeeResponse {
	resp := FeeResponse{
		FeeID:   f.FeeID,
		FeeType: f.FeeType,
		Amount:  f.Amount,
	}
	if f.DueDate != nil {
		v := f.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	return resp
}
