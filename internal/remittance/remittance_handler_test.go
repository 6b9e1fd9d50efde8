package remittance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"transparency/internal/remittance"
	remittanceerrors "transparency/internal/remittance/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeRemittanceService struct {
	submitFn  func(ctx context.Context, accountID string, req remittance.SubmitRemittanceRequest) (remittance.RemittanceResponse, error)
	reviewFn  func(ctx context.Context, reviewerID string, id int64, req remittance.ReviewRemittanceRequest) (remittance.RemittanceResponse, error)
	getAllFn  func(ctx context.Context, status string) ([]remittance.RemittanceResponse, error)
	getByIDFn func(ctx context.Context, id int64) (remittance.RemittanceResponse, error)
}

func (f *fakeRemittanceService) Submit(ctx context.Context, accountID string, req remittance.SubmitRemittanceRequest) (remittance.RemittanceResponse, error) {
	return f.submitFn(ctx, accountID, req)
}

func (f *fakeRemittanceService) Review(ctx context.Context, reviewerID string, id int64, req remittance.ReviewRemittanceRequest) (remittance.RemittanceResponse, error) {
	return f.reviewFn(ctx, reviewerID, id, req)
}

func (f *fakeRemittanceService) GetAll(ctx context.Context, status string) ([]remittance.RemittanceResponse, error) {
	return f.getAllFn(ctx, status)
}

func (f *fakeRemittanceService) GetByID(ctx context.Context, id int64) (remittance.RemittanceResponse, error) {
	return f.getByIDFn(ctx, id)
}

func TestRemittanceHandler_Submit(t *testing.T) {
	svc := &fakeRemittanceService{
		submitFn: func(ctx context.Context, accountID string, req remittance.SubmitRemittanceRequest) (remittance.RemittanceResponse, error) {
			assert.Equal(t, "9", accountID)
			assert.Equal(t, int64(7), req.FeeID)
			assert.Equal(t, "750.00", req.AmountRemitted)
			return remittance.RemittanceResponse{RemittanceID: 42, Status: remittance.StatusPendingVerification}, nil
		},
	}

	h := remittance.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"fee_id":7,"amount_remitted":"750.00","remittance_date":"2026-05-12"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/remittances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("account_id_validated", "9")

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestRemittanceHandler_Submit_MissingAmount(t *testing.T) {
	h := remittance.NewHandler(&fakeRemittanceService{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"fee_id":7}`
	c.Request = httptest.NewRequest(http.MethodPost, "/remittances", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("account_id_validated", "9")

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

func TestRemittanceHandler_Review_AlreadyReviewed(t *testing.T) {
	svc := &fakeRemittanceService{
		reviewFn: func(ctx context.Context, reviewerID string, id int64, req remittance.ReviewRemittanceRequest) (remittance.RemittanceResponse, error) {
			return remittance.RemittanceResponse{}, remittanceerrors.ErrAlreadyReviewed
		},
	}

	h := remittance.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"action":"verify"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/remittances/42/review", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = []gin.Param{{Key: "id", Value: "42"}}
	c.Set("account_id_validated", "3")

	h.Review(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}
