package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/energy-oracle/eo-api/internal/analytics"
)

// Range-length caps per operation, mirroring the data volume each one
// touches.
const (
	maxDailyRangeDays    = 90
	maxWeeklyRangeDays   = 365
	maxPeakRangeDays     = 31
	maxStatsRangeDays    = 365
	maxWeightedRangeDays = 31
	maxSummaryRangeDays  = 90

	defaultRenewableThreshold = 50
)

// AnalyticsHandler serves the derived-analytics endpoints.
type AnalyticsHandler struct {
	svc *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// DailyAverages handles GET /uk/analytics/prices/daily.
func (h *AnalyticsHandler) DailyAverages(c *gin.Context) {
	from, to, ok := dateRange(c, maxDailyRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.DailyAverages(c.Request.Context(), from, to, priceTypeQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// WeeklyAverages handles GET /uk/analytics/prices/weekly.
func (h *AnalyticsHandler) WeeklyAverages(c *gin.Context) {
	from, to, ok := dateRange(c, maxWeeklyRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.WeeklyAverages(c.Request.Context(), from, to, priceTypeQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PeakOffPeak handles GET /uk/analytics/prices/peak-offpeak.
func (h *AnalyticsHandler) PeakOffPeak(c *gin.Context) {
	from, to, ok := dateRange(c, maxPeakRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.PeakOffPeak(c.Request.Context(), from, to, priceTypeQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PriceStatistics handles GET /uk/analytics/prices/statistics.
func (h *AnalyticsHandler) PriceStatistics(c *gin.Context) {
	from, to, ok := dateRange(c, maxStatsRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.PriceStatistics(c.Request.Context(), from, to, priceTypeQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CarbonWeightedPrice handles GET /uk/analytics/carbon/weighted-price.
func (h *AnalyticsHandler) CarbonWeightedPrice(c *gin.Context) {
	from, to, ok := dateRange(c, maxWeightedRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.CarbonWeightedPrice(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DailyCarbonSummaries handles GET /uk/analytics/carbon/daily-summary.
func (h *AnalyticsHandler) DailyCarbonSummaries(c *gin.Context) {
	from, to, ok := dateRange(c, maxSummaryRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.DailyCarbonSummaries(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RenewableGenerationIndex handles GET /uk/analytics/renewable/generation/:year/:month.
func (h *AnalyticsHandler) RenewableGenerationIndex(c *gin.Context) {
	year, month, ok := monthPath(c)
	if !ok {
		return
	}
	result, err := h.svc.RenewableGenerationIndex(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GreenPremium handles GET /uk/analytics/prices/green-premium/:year/:month.
func (h *AnalyticsHandler) GreenPremium(c *gin.Context) {
	year, month, ok := monthPath(c)
	if !ok {
		return
	}
	threshold := defaultRenewableThreshold
	if raw := c.Query("renewable_threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > 100 {
			badRequest(c, "renewable_threshold must be between 0 and 100")
			return
		}
		threshold = n
	}
	result, err := h.svc.GreenPremium(c.Request.Context(), year, month, threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
