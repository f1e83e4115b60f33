package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/negspulse/internal/domain/dto"
	"github.com/guttosm/negspulse/internal/service"
)

const (
	dateParamLayout = "2006-01-02"

	// DefaultUploadMaxBytes bounds POST /api/v1/negs/parse bodies when no limit is configured.
	DefaultUploadMaxBytes int64 = 32 << 20
)

// Handler provides HTTP handlers for the aggregate and NEGS document endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters and uploads
//   - Delegate to the service layer
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc       service.AggregateService
	docs      service.DocumentService
	maxUpload int64
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc: aggregate queries over persisted trades.
//   - docs: NEGS decoding and ingested file listing.
//   - maxUpload: largest accepted upload in bytes; <= 0 uses DefaultUploadMaxBytes.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.AggregateService, docs service.DocumentService, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = DefaultUploadMaxBytes
	}
	return &Handler{svc: svc, docs: docs, maxUpload: maxUpload}
}

// GetAggregate handles GET /api/v1/aggregate requests.
//
// Query Parameters:
//   - ticker (string, required): codigo_negociacao (e.g., "PETR4").
//   - data_inicio (string, optional): Minimum session date in YYYY-MM-DD format.
//   - data_fim (string, optional): Maximum session date in YYYY-MM-DD format.
//
// When both data_inicio and data_fim are absent the window is the last 7 days
// ending yesterday. A single bound leaves the other side open.
//
// Responses:
//   - 200 OK: Returns AggregateResponse containing max price and max daily volume.
//   - 400 Bad Request: Missing or invalid query parameters.
//   - 404 Not Found: No trades found for the given ticker/date range.
//   - 500 Internal Server Error: Failure in repository or database layer.
//
// GetAggregate godoc
// @Summary      Get aggregate by ticker
// @Description  Returns max preco_negocio and max daily quantidade_negocio for the given ticker over ingested NEGS trades
// @Tags         aggregate
// @Accept       json
// @Produce      json
// @Param        ticker       query     string  true   "Stock ticker" example(PETR4)
// @Param        data_inicio  query     string  false  "Start date in YYYY-MM-DD; with data_fim also absent, defaults to 7 days ending yesterday" example(2024-09-01)
// @Param        data_fim     query     string  false  "End date in YYYY-MM-DD" example(2024-09-30)
// @Success      200          {object}  dto.AggregateResponse  "Success"
// @Failure      400          {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404          {object}  dto.ErrorResponse      "Not Found"
// @Failure      500          {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/aggregate [get]
func (h *Handler) GetAggregate(c *gin.Context) {
	// ─── Validate "ticker" param ──────────────────────────────
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ticker is required", nil))
		return
	}

	// ─── Parse optional "data_inicio" / "data_fim" params ─────
	startDate, err := parseDateParam(c, "data_inicio")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid data_inicio format, expected YYYY-MM-DD", err))
		return
	}
	endDate, err := parseDateParam(c, "data_fim")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid data_fim format, expected YYYY-MM-DD", err))
		return
	}
	if startDate == nil && endDate == nil {
		// Default: last 7 days, ending yesterday
		yday := truncateDate(time.Now().UTC().AddDate(0, 0, -1))
		start := yday.AddDate(0, 0, -6)
		startDate = &start
		endDate = &yday
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("data_fim must not be before data_inicio", nil))
		return
	}

	// ─── Query service (with request context) ─────────────────
	agg, err := h.svc.GetAggregate(c.Request.Context(), ticker, startDate, endDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch aggregates", err))
		return
	}
	if agg == nil {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("no data found", nil))
		return
	}

	// ─── Build and return response DTO ────────────────────────
	c.JSON(http.StatusOK, dto.NewAggregateResponse(agg, startDate, endDate))
}

func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateParamLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
