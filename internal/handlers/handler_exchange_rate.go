package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/dto"
	"github.com/SscSPs/fxrates_backend/internal/middleware"
	"github.com/SscSPs/fxrates_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg gin.IRouter, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/rate")
	{
		rates.GET("", h.listExchangeRates)
		rates.POST("", h.createExchangeRate)
		rates.PUT("", h.updateExchangeRate)
		rates.GET("/pair/*currencyPair", h.resolveExchangeRate)
		rates.GET("/:id", h.getExchangeRate)
		rates.DELETE("/:id", h.deleteExchangeRate)
	}
}

func parseRateID(c *gin.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid exchange rate id: " + raw)
	}
	return id, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(key + " must be an integer")
	}
	return v, nil
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves a stored exchange rate by its id
// @Tags exchange rates
// @Produce  json
// @Param   id path int true "Exchange rate ID"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /rate/{id} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parseRateID(c)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	rate, err := h.exchangeRateService.GetExchangeRateByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger.With(slog.Int64("exchange_rate_id", id)), err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, rate)
}

// listExchangeRates godoc
// @Summary List exchange rates
// @Description Retrieves a page of stored exchange rates ordered by source currency
// @Tags exchange rates
// @Produce  json
// @Param   pageIndex query int false "0-based page index" default(0)
// @Param   pageSize  query int false "Page size" default(10)
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid paging parameters"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /rate [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pageIndex, err := queryInt(c, "pageIndex", pagination.DefaultPageIndex)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}
	pageSize, err := queryInt(c, "pageSize", pagination.DefaultPageSize)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}

	page, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), pageIndex, pageSize)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, page)
}

// resolveExchangeRate godoc
// @Summary Resolve a currency pair
// @Description Returns the latest stored rate for FROM/TO, fetching it from the provider when none is stored
// @Tags exchange rates
// @Produce  json
// @Param   currencyPair path string true "Currency pair, e.g. USD/EUR"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid pair or resolution failure"
// @Router /rate/pair/{currencyPair} [get]
func (h *exchangeRateHandler) resolveExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	pair := strings.TrimPrefix(c.Param("currencyPair"), "/")
	logger = logger.With(slog.String("currency_pair", pair))

	rate, err := h.exchangeRateService.ResolveExchangeRate(c.Request.Context(), pair)
	if err != nil {
		logger.Warn("Failed to resolve exchange rate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": errorMessage(err)})
		return
	}
	c.JSON(http.StatusOK, rate)
}

// createExchangeRate godoc
// @Summary Create a new exchange rate
// @Description Stores a new exchange rate between two known currencies
// @Tags exchange rates
// @Accept  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 204 "Created"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Router /rate [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	logger.Info("Received request to create exchange rate",
		slog.String("from", req.FromCurrencyCode),
		slog.String("to", req.ToCurrencyCode),
		slog.String("rate", req.ExchangeRate.String()),
	)

	created, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.Int64("exchange_rate_id", created.ExchangeRateID))
	c.Status(http.StatusNoContent)
}

// updateExchangeRate godoc
// @Summary Update an exchange rate
// @Description Overwrites the prices, rate, time zone and currencies of a stored exchange rate
// @Tags exchange rates
// @Accept  json
// @Param   rate body dto.UpdateExchangeRateRequest true "Exchange Rate details"
// @Success 204 "Updated"
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Exchange rate or currency not found"
// @Failure 500 {object} map[string]string "Failed to update exchange rate"
// @Router /rate [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	logger = logger.With(slog.Int64("exchange_rate_id", req.ExchangeRateID))
	if _, err := h.exchangeRateService.UpdateExchangeRate(c.Request.Context(), req); err != nil {
		respondError(c, logger, err, "Failed to update exchange rate")
		return
	}

	logger.Info("Exchange rate updated successfully")
	c.Status(http.StatusNoContent)
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate
// @Description Physically removes a stored exchange rate
// @Tags exchange rates
// @Param   id path int true "Exchange rate ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to delete exchange rate"
// @Router /rate/{id} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, err := parseRateID(c)
	if err != nil {
		respondError(c, logger, err, "Failed to delete exchange rate")
		return
	}

	logger = logger.With(slog.Int64("exchange_rate_id", id))
	if err := h.exchangeRateService.DeleteExchangeRate(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete exchange rate")
		return
	}

	logger.Info("Exchange rate deleted successfully")
	c.Status(http.StatusNoContent)
}
