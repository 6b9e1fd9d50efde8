package dashboard

import (
	"net/http"

	"transparency/internal/shared/apperror"
	"transparency/internal/shared/contextutil"
	"transparency/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("dashboard.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAdminSummary(c *gin.Context) {
	resp, err := h.service.GetAdminSummary(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetFeeUtilization(c *gin.Context) {
	resp, err := h.service.GetFeeUtilization(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetClassTreasurerSummary serves the logged-in treasurer's own class view.
// The email comes from the verified token, never from the query string.
func (h *Handler) GetClassTreasurerSummary(c *gin.Context) {
	email := c.GetString("email")
	if email == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Email claim missing", nil)
		return
	}

	ctx := contextutil.WithLogger(c.Request.Context(), h.logger)
	resp, err := h.service.GetClassTreasurerSummary(ctx, email)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
