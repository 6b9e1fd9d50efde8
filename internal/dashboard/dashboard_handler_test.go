package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"transparency/internal/dashboard"
	dashboarderrors "transparency/internal/dashboard/errors"

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

type fakeDashboardService struct {
	getAdminSummaryFn          func(ctx context.Context) (dashboard.AdminDashboardSummary, error)
	getFeeUtilizationFn        func(ctx context.Context) ([]dashboard.FeeUtilization, error)
	getClassTreasurerSummaryFn func(ctx context.Context, email string) (dashboard.ClassSummary, error)
}

func (f *fakeDashboardService) GetAdminSummary(ctx context.Context) (dashboard.AdminDashboardSummary, error) {
	return f.getAdminSummaryFn(ctx)
}

func (f *fakeDashboardService) GetFeeUtilization(ctx context.Context) ([]dashboard.FeeUtilization, error) {
	return f.getFeeUtilizationFn(ctx)
}

func (f *fakeDashboardService) GetClassTreasurerSummary(ctx context.Context, email string) (dashboard.ClassSummary, error) {
	return f.getClassTreasurerSummaryFn(ctx, email)
}

func TestDashboardHandler_GetAdminSummary(t *testing.T) {
	svc := &fakeDashboardService{
		getAdminSummaryFn: func(ctx context.Context) (dashboard.AdminDashboardSummary, error) {
			return dashboard.AdminDashboardSummary{
				PaymentsByStatus: map[string]dashboard.StatusBucket{"Paid": {Count: 3}},
			}, nil
		},
	}

	h := dashboard.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)

	h.GetAdminSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestDashboardHandler_GetClassTreasurerSummary(t *testing.T) {
	t.Run("email from token claim", func(t *testing.T) {
		svc := &fakeDashboardService{
			getClassTreasurerSummaryFn: func(ctx context.Context, email string) (dashboard.ClassSummary, error) {
				assert.Equal(t, "treasurer@university.edu", email)
				return dashboard.ClassSummary{ProgramID: "BSIT", YearLevel: 3, Section: "A"}, nil
			},
		}

		h := dashboard.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/my-class", nil)
		c.Set("email", "treasurer@university.edu")

		h.GetClassTreasurerSummary(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing email claim", func(t *testing.T) {
		h := dashboard.NewHandler(&fakeDashboardService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/my-class", nil)

		h.GetClassTreasurerSummary(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})

	t.Run("no class identity", func(t *testing.T) {
		svc := &fakeDashboardService{
			getClassTreasurerSummaryFn: func(ctx context.Context, email string) (dashboard.ClassSummary, error) {
				return dashboard.ClassSummary{}, dashboarderrors.ErrNoClassIdentity
			},
		}

		h := dashboard.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/my-class", nil)
		c.Set("email", "unlinked@university.edu")

		h.GetClassTreasurerSummary(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}
