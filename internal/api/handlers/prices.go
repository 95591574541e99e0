package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/energy-oracle/eo-api/internal/model"
	"github.com/energy-oracle/eo-api/internal/prices"
)

const (
	defaultLatestLimit = 48
	maxLatestLimit     = 500
	maxPriceRangeDays  = 31
)

// PriceHandler serves the raw price endpoints.
type PriceHandler struct {
	svc *prices.Service
}

func NewPriceHandler(svc *prices.Service) *PriceHandler {
	return &PriceHandler{svc: svc}
}

// Latest handles GET /uk/prices/{system|dayahead}/latest.
func (h *PriceHandler) Latest(priceType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultLatestLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > maxLatestLimit {
				badRequest(c, "limit must be an integer between 1 and 500")
				return
			}
			limit = n
		}
		result, err := h.svc.Latest(c.Request.Context(), priceType, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ByDate handles GET /uk/prices/{system|dayahead}/date/:date.
func (h *PriceHandler) ByDate(priceType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		date, err := model.ParseDate(c.Param("date"))
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		result, err := h.svc.ByDate(c.Request.Context(), priceType, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// Range handles GET /uk/prices/system/range. Capped at 31 days to bound
// response size.
func (h *PriceHandler) Range(priceType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, to, ok := dateRange(c, maxPriceRangeDays)
		if !ok {
			return
		}
		result, err := h.svc.Range(c.Request.Context(), priceType, from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// MonthlyAverage handles GET /uk/prices/{system|dayahead}/monthly-avg/:year/:month.
// This is the reference price endpoint for PPA settlement.
func (h *PriceHandler) MonthlyAverage(priceType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, month, ok := monthPath(c)
		if !ok {
			return
		}
		result, err := h.svc.MonthlyAverage(c.Request.Context(), priceType, year, month)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
