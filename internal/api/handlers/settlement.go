package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/energy-oracle/eo-api/internal/api/models"
	"github.com/energy-oracle/eo-api/internal/settlement"
)

// SettlementHandler serves the PPA settlement endpoints.
type SettlementHandler struct {
	svc *settlement.Service
}

func NewSettlementHandler(svc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// Calculate handles POST /uk/settlement/calculate.
func (h *SettlementHandler) Calculate(c *gin.Context) {
	var req settlement.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}
	result, err := h.svc.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Contracts handles GET /uk/settlement/contracts.
func (h *SettlementHandler) Contracts(c *gin.Context) {
	contracts := h.svc.Contracts()
	c.JSON(http.StatusOK, gin.H{
		"data":  contracts,
		"count": len(contracts),
	})
}
