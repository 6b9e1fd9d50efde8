package report

import (
	"net/http"
	"strconv"

	reporterrors "transparency/internal/report/errors"
	"transparency/internal/shared/apperror"
	"transparency/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetPagedRemittanceStatus serves one page of the per-fee remittance-status
// table for the admin/org-treasurer report screen.
func (h *Handler) GetPagedRemittanceStatus(c *gin.Context) {
	feeID, err := strconv.ParseInt(c.Param("feeId"), 10, 64)
	if err != nil {
		h.writeServiceError(c, reporterrors.ErrInvalidFeeID)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	if size < 1 {
		size = 10
	}

	q := PageQuery{
		FeeID:     feeID,
		Page:      page,
		Size:      size,
		SortField: c.DefaultQuery("sortField", SortUserName),
		SortDir:   c.DefaultQuery("sortDir", "asc"),
		Program:   c.DefaultQuery("program", "all"),
		Year:      c.DefaultQuery("yearLevel", "all"),
		Section:   c.DefaultQuery("section", "all"),
	}

	resp, err := h.service.BuildPage(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(resp.TotalElements, page, size)
	response.Success(c, http.StatusOK, resp.Rows, &meta)
}

// GetFullRemittanceReport serves the unpaginated export used for report
// downloads; rendering to spreadsheet/CSV happens client side.
func (h *Handler) GetFullRemittanceReport(c *gin.Context) {
	feeID, err := strconv.ParseInt(c.Param("feeId"), 10, 64)
	if err != nil {
		h.writeServiceError(c, reporterrors.ErrInvalidFeeID)
		return
	}

	q := ReportQuery{
		FeeID:        feeID,
		Program:      c.DefaultQuery("program", "all"),
		Year:         c.DefaultQuery("yearLevel", "all"),
		Section:      c.DefaultQuery("section", "all"),
		StatusFilter: c.DefaultQuery("status", "all"),
		Sort:         ParseSortSpec(c.QueryArray("sort")),
	}

	resp, err := h.service.BuildReport(c.Request.Context(), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
