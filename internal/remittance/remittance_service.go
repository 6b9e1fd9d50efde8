package remittance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"transparency/internal/events"
	"transparency/internal/fee"
	"transparency/internal/messaging/kafka"
	remittanceerrors "transparency/internal/remittance/errors"
	"transparency/internal/shared/contextutil"
)

type Service interface {
	Submit(ctx context.Context, accountID string, req SubmitRemittanceRequest) (RemittanceResponse, error)
	Review(ctx context.Context, reviewerID string, id int64, req ReviewRemittanceRequest) (RemittanceResponse, error)
	GetAll(ctx context.Context, status string) ([]RemittanceResponse, error)
	GetByID(ctx context.Context, id int64) (RemittanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	fees   fee.Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	fees fee.Repository,
	outbox kafka.OutboxRepository,
	logger *zap.Logger,
) Service {
	return &service{db: db, repo: repo, fees: fees, outbox: outbox, logger: logger}
}

// Submit records a class treasurer's remittance for a fee. The row and its
// lifecycle event are written in one transaction so the notification worker
// never sees an event without the remittance behind it.
func (s *service) Submit(
	ctx context.Context,
	accountID string,
	req SubmitRemittanceRequest,
) (RemittanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	acctID, err := strconv.ParseInt(accountID, 10, 64)
	if err != nil {
		s.logger.Warn("submit remittance invalid account id",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		return RemittanceResponse{}, remittanceerrors.ErrInvalidAccountID
	}

	amount, err := decimal.NewFromString(req.AmountRemitted)
	if err != nil || amount.IsNegative() {
		s.logger.Warn("submit remittance invalid amount",
			zap.String("amount_remitted", req.AmountRemitted),
		)
		return RemittanceResponse{}, remittanceerrors.ErrInvalidAmount
	}

	remittanceDate := time.Now().UTC()
	if req.RemittanceDate != "" {
		remittanceDate, err = time.Parse("2006-01-02", req.RemittanceDate)
		if err != nil {
			return RemittanceResponse{}, remittanceerrors.ErrInvalidDateFormat
		}
	}

	if _, err := s.fees.FindByID(ctx, req.FeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemittanceResponse{}, remittanceerrors.ErrFeeNotFound
		}
		s.logger.Error("submit remittance fee lookup failed", zap.Error(err))
		return RemittanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RemittanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rem := &Remittance{
		FeeID:          req.FeeID,
		AccountID:      acctID,
		AmountRemitted: amount,
		Status:         StatusPendingVerification,
		RemittanceDate: remittanceDate,
		Note:           req.Note,
	}

	if err := qtx.Create(ctx, rem); err != nil {
		s.logger.Error("submit remittance persist failed", zap.Error(err))
		return RemittanceResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.RemittanceSubmittedType, rem); err != nil {
		return RemittanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit remittance commit failed", zap.String("request_id", rid), zap.Error(err))
		return RemittanceResponse{}, err
	}

	s.logger.Info("submit remittance success",
		zap.String("request_id", rid),
		zap.Int64("remittance_id", rem.RemittanceID),
		zap.Int64("fee_id", rem.FeeID),
		zap.String("amount_remitted", amount.StringFixed(2)),
	)

	return mapToResponse(*rem), nil
}

// Review verifies or rejects a pending remittance. Only remittances still in
// PENDING_VERIFICATION can be reviewed.
func (s *service) Review(
	ctx context.Context,
	reviewerID string,
	id int64,
	req ReviewRemittanceRequest,
) (RemittanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	revID, err := strconv.ParseInt(reviewerID, 10, 64)
	if err != nil {
		return RemittanceResponse{}, remittanceerrors.ErrInvalidAccountID
	}

	rem, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemittanceResponse{}, remittanceerrors.ErrRemittanceNotFound
		}
		return RemittanceResponse{}, err
	}

	if rem.Status != StatusPendingVerification {
		return RemittanceResponse{}, remittanceerrors.ErrAlreadyReviewed
	}

	eventType := events.RemittanceVerifiedType
	rem.Status = StatusVerified
	if req.Action == "reject" {
		eventType = events.RemittanceRejectedType
		rem.Status = StatusRejected
	}
	now := time.Now().UTC()
	rem.VerifiedBy = &revID
	rem.VerifiedAt = &now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RemittanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateReview(ctx, rem); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemittanceResponse{}, remittanceerrors.ErrRemittanceNotFound
		}
		s.logger.Error("review remittance persist failed", zap.Error(err))
		return RemittanceResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, eventType, rem); err != nil {
		return RemittanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review remittance commit failed", zap.String("request_id", rid), zap.Error(err))
		return RemittanceResponse{}, err
	}

	s.logger.Info("review remittance success",
		zap.String("request_id", rid),
		zap.Int64("remittance_id", rem.RemittanceID),
		zap.String("status", rem.Status),
	)

	return mapToResponse(*rem), nil
}

func (s *service) GetAll(ctx context.Context, status string) ([]RemittanceResponse, error) {
	rems, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}

	responses := make([]RemittanceResponse, 0, len(rems))
	for _, rem := range rems {
		responses = append(responses, mapToResponse(rem))
	}
	return responses, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (RemittanceResponse, error) {
	rem, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RemittanceResponse{}, remittanceerrors.ErrRemittanceNotFound
		}
		return RemittanceResponse{}, err
	}
	return mapToResponse(*rem), nil
}

func (s *service) queueLifecycleEvent(
	ctx context.Context,
	tx *sql.Tx,
	rid, eventType string,
	rem *Remittance,
) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.RemittanceLifecycleEvent{
		EventType:      eventType,
		RemittanceID:   rem.RemittanceID,
		FeeID:          rem.FeeID,
		AccountID:      rem.AccountID,
		AmountRemitted: rem.AmountRemitted,
		Status:         rem.Status,
		OccurredAt:     time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "remittance",
		AggregateID:   strconv.FormatInt(rem.RemittanceID, 10),
		EventType:     eventType,
		Topic:         events.RemittanceLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("remittance outbox persist failed",
			zap.Int64("remittance_id", rem.RemittanceID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func mapToResponse(rem Remittance) RemittanceResponse {
	return RemittanceResponse{
		RemittanceID:   rem.RemittanceID,
		FeeID:          rem.FeeID,
		AccountID:      rem.AccountID,
		AmountRemitted: rem.AmountRemitted,
		Status:         rem.Status,
		RemittanceDate: rem.RemittanceDate.Format("2006-01-02"),
		Note:           rem.Note,
		VerifiedBy:     rem.VerifiedBy,
		VerifiedAt:     rem.VerifiedAt,
	}
}
