package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/dto"
	"github.com/rahmannascenia/accountingbolt/internal/middleware"
)

// ExchangeRateHandler handles exchange rate endpoints.
type ExchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

// NewExchangeRateHandler creates a new exchange rate handler.
func NewExchangeRateHandler(rateService portssvc.ExchangeRateSvcFacade) *ExchangeRateHandler {
	return &ExchangeRateHandler{rateService: rateService}
}

// ApplyManualRate godoc
// @Summary      Apply a manual exchange rate
// @Description  Appends a manual rate row for a currency pair and effective date. Existing rows are left untouched; resolution prefers the newest row.
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        rate  body      dto.ApplyManualRateRequest  true  "Manual rate"
// @Success      201   {object}  dto.ExchangeRateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /exchange-rates [post]
func (h *ExchangeRateHandler) ApplyManualRate(c *gin.Context) {
	var req dto.ApplyManualRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User identity missing from request context"})
		return
	}

	rate, err := h.rateService.ApplyManualRate(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(rate))
}

// ResolveRate godoc
// @Summary      Resolve the applicable exchange rate for a pair
// @Description  Returns the active rate with the latest effective date at or before asOf. Identity pairs resolve to 1.
// @Tags         exchange-rates
// @Produce      json
// @Param        from  path      string  true   "From currency code"
// @Param        to    path      string  true   "To currency code"
// @Param        asOf  query     string  false  "As-of date (YYYY-MM-DD), defaults to today"
// @Success      200   {object}  dto.ExchangeRateResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /exchange-rates/{from}/{to} [get]
func (h *ExchangeRateHandler) ResolveRate(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}

	rate, err := h.rateService.ResolveRate(c.Request.Context(), c.Param("from"), c.Param("to"), asOf)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// ListRates godoc
// @Summary      List exchange rates
// @Description  Returns a page of rate rows, newest first, optionally filtered by pair and as-of date.
// @Tags         exchange-rates
// @Produce      json
// @Param        from      query     string  false  "From currency code"
// @Param        to        query     string  false  "To currency code"
// @Param        asOf      query     string  false  "Only rates effective at or before this date (YYYY-MM-DD)"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        pageSize  query     int     false  "Page size (max 100)"
// @Success      200       {object}  dto.ListExchangeRatesResponse
// @Failure      400       {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /exchange-rates [get]
func (h *ExchangeRateHandler) ListRates(c *gin.Context) {
	params := dto.ListExchangeRatesParams{}
	if from := c.Query("from"); from != "" {
		params.FromCurrencyCode = &from
	}
	if to := c.Query("to"); to != "" {
		params.ToCurrencyCode = &to
	}
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "asOf must be a date in YYYY-MM-DD format"})
			return
		}
		asOf := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 23, 59, 59, 0, time.UTC)
		params.AsOf = &asOf
	}
	if page, err := parsePositiveInt(c.Query("page")); err == nil {
		params.Page = page
	}
	if pageSize, err := parsePositiveInt(c.Query("pageSize")); err == nil {
		params.PageSize = pageSize
	}

	rates, total, err := h.rateService.ListRates(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	c.JSON(http.StatusOK, dto.ToListExchangeRatesResponse(rates, total, params.Page, params.PageSize))
}
