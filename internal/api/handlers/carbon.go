package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energy-oracle/eo-api/internal/carbon"
	"github.com/energy-oracle/eo-api/internal/model"
)

const maxCarbonRangeDays = 90

// CarbonHandler serves the carbon intensity and fuel mix endpoints.
type CarbonHandler struct {
	svc *carbon.Service
}

func NewCarbonHandler(svc *carbon.Service) *CarbonHandler {
	return &CarbonHandler{svc: svc}
}

// CurrentIntensity handles GET /uk/carbon/intensity/current.
func (h *CarbonHandler) CurrentIntensity(c *gin.Context) {
	result, err := h.svc.CurrentIntensity(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// IntensityRange handles GET /uk/carbon/intensity/range/.
func (h *CarbonHandler) IntensityRange(c *gin.Context) {
	from, to, ok := dateRange(c, maxCarbonRangeDays)
	if !ok {
		return
	}
	result, err := h.svc.IntensityRange(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// IntensityByDate handles GET /uk/carbon/intensity/:date.
func (h *CarbonHandler) IntensityByDate(c *gin.Context) {
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.svc.IntensityByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CurrentFuelMix handles GET /uk/carbon/fuelmix/current.
func (h *CarbonHandler) CurrentFuelMix(c *gin.Context) {
	result, err := h.svc.CurrentFuelMix(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FuelMixByDate handles GET /uk/carbon/fuelmix/:date.
func (h *CarbonHandler) FuelMixByDate(c *gin.Context) {
	date, err := model.ParseDate(c.Param("date"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	result, err := h.svc.FuelMixByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
