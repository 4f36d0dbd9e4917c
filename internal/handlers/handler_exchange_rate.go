package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wathiqah/wathiqah-backend/internal/apperrors"
	portssvc "github.com/wathiqah/wathiqah-backend/internal/core/ports/services"
	"github.com/wathiqah/wathiqah-backend/internal/dto"
	"github.com/wathiqah/wathiqah-backend/internal/middleware"
)

// exchangeRateHandler handles HTTP requests related to exchange rates and conversion.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	fx := rg.Group("/fx")
	{
		fx.GET("/rates", h.listRates)
		fx.GET("/rates/history", h.getRateHistory)
		fx.GET("/rates/:from/:to", h.getRate)
		fx.GET("/convert", h.convert)
	}
}

// listRates godoc
// @Summary List current exchange rates
// @Description Retrieves the current USD-pivoted rate snapshot for all supported currencies
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /fx/rates [get]
func (h *exchangeRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.exchangeRateService.ListRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list exchange rates from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the exchange rate between two currencies, pivoting through USD
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid currency code format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Router /fx/rates/{from}/{to} [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := strings.ToUpper(c.Param("from"))
	toCode := strings.ToUpper(c.Param("to"))

	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), fromCode, toCode)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": fromCode, "to": toCode, "rate": rate})
}

// getRateHistory godoc
// @Summary Get exchange rate history
// @Description Retrieves historical rate observations for a currency pair, newest first
// @Tags exchange rates
// @Produce  json
// @Param   from  query string true  "From Currency Code (3 letters)"
// @Param   to    query string true  "To Currency Code (3 letters)"
// @Param   limit query int    false "Maximum rows to return (default 50)"
// @Success 200 {array} dto.ExchangeRateHistoryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to retrieve rate history"
// @Router /fx/rates/history [get]
func (h *exchangeRateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RateHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for GetRateHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.Normalize()

	history, err := h.exchangeRateService.GetRateHistory(c.Request.Context(), req.From, req.To, req.Limit)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to retrieve rate history")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateHistoryResponse(history))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Converts an amount using the latest USD-pivoted rates, rounded to two decimal places half-up
// @Tags exchange rates
// @Produce  json
// @Param   amount query number true "Amount to convert"
// @Param   from   query string true "From Currency Code (3 letters)"
// @Param   to     query string true "To Currency Code (3 letters)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Exchange rate unavailable"
// @Router /fx/convert [get]
func (h *exchangeRateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Warn("Failed to bind query for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.Normalize()

	converted, err := h.exchangeRateService.Convert(c.Request.Context(), req.Amount, req.From, req.To)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to convert amount")
		return
	}

	// Rate is re-derived for the response; same-currency conversions report
	// a rate of 1 without a lookup.
	rate, err := h.exchangeRateService.GetRate(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.respondRateError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		Amount:          req.Amount,
		From:            req.From,
		To:              req.To,
		ConvertedAmount: converted,
		Rate:            rate,
	})
}

// respondRateError maps service errors to HTTP responses shared by the fx endpoints.
func (h *exchangeRateHandler) respondRateError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrRateUnavailable):
		logger.Warn("Exchange rate unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exchange rate unavailable. Please try again later."})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}
