package handlers

import (
	"log/slog"
	"mime"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/middleware"
	"github.com/SscSPs/account_ledger/internal/report"
	"github.com/gin-gonic/gin"
)

// reportHandler serves consolidated customer statements.
type reportHandler struct {
	statementService portssvc.StatementService
	renderer         portssvc.StatementRenderer
	now              func() time.Time
}

func newReportHandler(ss portssvc.StatementService, renderer portssvc.StatementRenderer) *reportHandler {
	return &reportHandler{
		statementService: ss,
		renderer:         renderer,
		now:              time.Now,
	}
}

// RegisterReportRoutes registers the statement routes.
func RegisterReportRoutes(rg *gin.RouterGroup, ss portssvc.StatementService, renderer portssvc.StatementRenderer) {
	h := newReportHandler(ss, renderer)

	reports := rg.Group("/reports")
	{
		reports.GET("/:customerID", h.getStatement)
		reports.GET("/:customerID/movements", h.getStatementMovements)
	}
}

// getStatement godoc
// @Summary Get a customer account statement
// @Description Merges the movements of every account the customer owns within the range, newest first.
// @Description Dormant accounts appear as a single "No movements" row. With format=excel an XLSX file is returned.
// @Tags reports
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param customerID path string true "Customer ID"
// @Param startDate query string true "Range start (YYYY-MM-DD or RFC3339)"
// @Param endDate query string true "Range end (YYYY-MM-DD or RFC3339); a bare date includes the whole day"
// @Param format query string false "json or excel" default(json)
// @Success 200 {array} dto.StatementRowResponse
// @Failure 400 {object} map[string]string "Invalid date range or format"
// @Failure 404 {object} map[string]string "Customer has no accounts"
// @Failure 500 {object} map[string]string "Failed to generate statement"
// @Router /reports/{customerID} [get]
func (h *reportHandler) getStatement(c *gin.Context) {
	h.serveStatement(c, true)
}

// getStatementMovements godoc
// @Summary Get the statement rows of a customer as JSON
// @Tags reports
// @Produce json
// @Param customerID path string true "Customer ID"
// @Param startDate query string true "Range start (YYYY-MM-DD or RFC3339)"
// @Param endDate query string true "Range end (YYYY-MM-DD or RFC3339)"
// @Success 200 {array} dto.StatementRowResponse
// @Failure 400 {object} map[string]string "Invalid date range"
// @Failure 404 {object} map[string]string "Customer has no accounts"
// @Router /reports/{customerID}/movements [get]
func (h *reportHandler) getStatementMovements(c *gin.Context) {
	h.serveStatement(c, false)
}

func (h *reportHandler) serveStatement(c *gin.Context, allowTabular bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	var query dto.StatementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithBindError(c, logger, err, "query parameters")
		return
	}

	format := portssvc.FormatStructured
	if allowTabular {
		var err error
		if format, err = report.ParseFormat(query.Format); err != nil {
			respondWithError(c, logger, err, "Failed to generate statement")
			return
		}
	}

	start, end, err := parseStatementRange(query.StartDate, query.EndDate)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate statement")
		return
	}

	logger = logger.With(slog.String("customer_id", customerID), slog.String("format", string(format)))
	logger.Info("Received request for statement", slog.Time("start", start), slog.Time("end", end))

	rows, err := h.statementService.BuildStatement(c.Request.Context(), customerID, start, end)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate statement")
		return
	}

	rendered, err := h.renderer.Render(rows, format)
	if err != nil {
		respondWithError(c, logger, err, "Failed to generate statement")
		return
	}

	if rendered.Format == portssvc.FormatTabular {
		filename := report.Filename(customerID, h.now())
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
		c.Data(http.StatusOK, rendered.ContentType, rendered.Content)
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(rendered.Rows))
}
