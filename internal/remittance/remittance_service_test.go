package remittance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"transparency/internal/events"
	"transparency/internal/fee"
	"transparency/internal/messaging/kafka"
	"transparency/internal/remittance"
	remittanceerrors "transparency/internal/remittance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRemittanceRepository struct {
	withTxFn       func(tx *sql.Tx) remittance.Repository
	createFn       func(ctx context.Context, rem *remittance.Remittance) error
	updateReviewFn func(ctx context.Context, rem *remittance.Remittance) error
	findByIDFn     func(ctx context.Context, id int64) (*remittance.Remittance, error)
	findAllFn      func(ctx context.Context, status string) ([]remittance.Remittance, error)
}

func (f *fakeRemittanceRepository) WithTx(tx *sql.Tx) remittance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRemittanceRepository) Create(ctx context.Context, rem *remittance.Remittance) error {
	if f.createFn != nil {
		return f.createFn(ctx, rem)
	}
	return nil
}

func (f *fakeRemittanceRepository) UpdateReview(ctx context.Context, rem *remittance.Remittance) error {
	if f.updateReviewFn != nil {
		return f.updateReviewFn(ctx, rem)
	}
	return nil
}

func (f *fakeRemittanceRepository) FindByID(ctx context.Context, id int64) (*remittance.Remittance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRemittanceRepository) FindAll(ctx context.Context, status string) ([]remittance.Remittance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, status)
	}
	return nil, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeFeeRepository struct {
	findByIDFn func(ctx context.Context, id int64) (*fee.Fee, error)
}

func (f *fakeFeeRepository) FindAll(ctx context.Context) ([]fee.Fee, error) {
	return nil, nil
}

func (f *fakeFeeRepository) FindByID(ctx context.Context, id int64) (*fee.Fee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &fee.Fee{FeeID: id, FeeType: "College Shirt"}, nil
}

type remittanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service remittance.Service
	repo    *fakeRemittanceRepository
	fees    *fakeFeeRepository
	outbox  *fakeOutboxRepository
}

func setupRemittanceServiceTest(t *testing.T) *remittanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRemittanceRepository{}
	fees := &fakeFeeRepository{}
	outbox := &fakeOutboxRepository{}
	svc := remittance.NewService(db, repo, fees, outbox, zap.NewNop())

	return &remittanceServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, fees: fees, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestRemittanceService_Submit(t *testing.T) {
	ctx := context.Background()

	deps := setupRemittanceServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.repo.createFn = func(ctx context.Context, rem *remittance.Remittance) error {
		rem.RemittanceID = 42
		assert.Equal(t, remittance.StatusPendingVerification, rem.Status)
		assert.Equal(t, int64(7), rem.FeeID)
		assert.Equal(t, int64(9), rem.AccountID)
		return nil
	}

	var queued kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		queued = event
		return nil
	}

	resp, err := deps.service.Submit(ctx, "9", remittance.SubmitRemittanceRequest{
		FeeID:          7,
		AmountRemitted: "750.00",
		RemittanceDate: "2026-05-12",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.RemittanceID)
	assert.Equal(t, remittance.StatusPendingVerification, resp.Status)
	assert.Equal(t, "2026-05-12", resp.RemittanceDate)
	assert.True(t, decimal.RequireFromString("750.00").Equal(resp.AmountRemitted))

	assert.Equal(t, events.RemittanceSubmittedType, queued.EventType)
	assert.Equal(t, events.RemittanceLifecycleTopic, queued.Topic)
	assert.Equal(t, "remittance", queued.AggregateType)
	assert.Equal(t, "42", queued.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, queued.Status)

	var payload events.RemittanceLifecycleEvent
	assert.NoError(t, json.Unmarshal(queued.Payload, &payload))
	assert.Equal(t, int64(42), payload.RemittanceID)
	assert.Equal(t, int64(9), payload.AccountID)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRemittanceService_Submit_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		accountID string
		req       remittance.SubmitRemittanceRequest
		wantErr   error
	}{
		{
			name:      "non-numeric account id",
			accountID: "treasurer@university.edu",
			req:       remittance.SubmitRemittanceRequest{FeeID: 7, AmountRemitted: "100.00"},
			wantErr:   remittanceerrors.ErrInvalidAccountID,
		},
		{
			name:      "unparseable amount",
			accountID: "9",
			req:       remittance.SubmitRemittanceRequest{FeeID: 7, AmountRemitted: "a lot"},
			wantErr:   remittanceerrors.ErrInvalidAmount,
		},
		{
			name:      "negative amount",
			accountID: "9",
			req:       remittance.SubmitRemittanceRequest{FeeID: 7, AmountRemitted: "-5.00"},
			wantErr:   remittanceerrors.ErrInvalidAmount,
		},
		{
			name:      "bad date format",
			accountID: "9",
			req:       remittance.SubmitRemittanceRequest{FeeID: 7, AmountRemitted: "100.00", RemittanceDate: "12/05/2026"},
			wantErr:   remittanceerrors.ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupRemittanceServiceTest(t)
			defer deps.db.Close()

			_, err := deps.service.Submit(ctx, tt.accountID, tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestRemittanceService_Submit_UnknownFee(t *testing.T) {
	ctx := context.Background()

	deps := setupRemittanceServiceTest(t)
	defer deps.db.Close()

	deps.fees.findByIDFn = func(ctx context.Context, id int64) (*fee.Fee, error) {
		return nil, gorm.ErrRecordNotFound
	}

	_, err := deps.service.Submit(ctx, "9", remittance.SubmitRemittanceRequest{
		FeeID:          999,
		AmountRemitted: "100.00",
	})

	assert.ErrorIs(t, err, remittanceerrors.ErrFeeNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestRemittanceService_Review(t *testing.T) {
	ctx := context.Background()

	pending := func() *remittance.Remittance {
		return &remittance.Remittance{
			RemittanceID:   42,
			FeeID:          7,
			AccountID:      9,
			AmountRemitted: decimal.RequireFromString("750.00"),
			Status:         remittance.StatusPendingVerification,
			RemittanceDate: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("verify", func(t *testing.T) {
		deps := setupRemittanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id int64) (*remittance.Remittance, error) {
			return pending(), nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		resp, err := deps.service.Review(ctx, "3", 42, remittance.ReviewRemittanceRequest{Action: "verify"})

		assert.NoError(t, err)
		assert.Equal(t, remittance.StatusVerified, resp.Status)
		assert.Equal(t, int64(3), *resp.VerifiedBy)
		assert.NotNil(t, resp.VerifiedAt)
		assert.Equal(t, events.RemittanceVerifiedType, queued.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject", func(t *testing.T) {
		deps := setupRemittanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id int64) (*remittance.Remittance, error) {
			return pending(), nil
		}

		var queued kafka.OutboxEvent
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			queued = event
			return nil
		}

		resp, err := deps.service.Review(ctx, "3", 42, remittance.ReviewRemittanceRequest{Action: "reject"})

		assert.NoError(t, err)
		assert.Equal(t, remittance.StatusRejected, resp.Status)
		assert.Equal(t, events.RemittanceRejectedType, queued.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already reviewed", func(t *testing.T) {
		deps := setupRemittanceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id int64) (*remittance.Remittance, error) {
			rem := pending()
			rem.Status = remittance.StatusVerified
			return rem, nil
		}

		_, err := deps.service.Review(ctx, "3", 42, remittance.ReviewRemittanceRequest{Action: "verify"})

		assert.ErrorIs(t, err, remittanceerrors.ErrAlreadyReviewed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupRemittanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Review(ctx, "3", 42, remittance.ReviewRemittanceRequest{Action: "verify"})

		assert.ErrorIs(t, err, remittanceerrors.ErrRemittanceNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
