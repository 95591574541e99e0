// Package handlers maps HTTP requests onto the services: parameter parsing
// and range-length limits live here, business rules do not.
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/energy-oracle/eo-api/internal/api/models"
	"github.com/energy-oracle/eo-api/internal/fault"
	"github.com/energy-oracle/eo-api/internal/model"
)

// respondError maps the fault taxonomy onto status codes. Unclassified
// errors are treated as internal.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	switch fault.KindOf(err) {
	case fault.NotFound:
		status, code = http.StatusNotFound, string(fault.NotFound)
	case fault.InvalidArgument:
		status, code = http.StatusBadRequest, string(fault.InvalidArgument)
	case fault.SchemaMismatch:
		status, code = http.StatusBadGateway, string(fault.SchemaMismatch)
	case fault.Unavailable:
		status, code = http.StatusServiceUnavailable, string(fault.Unavailable)
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: err.Error()},
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: message},
	})
}

// dateRange parses from_date/to_date query params and enforces an inclusive
// range no longer than maxDays. Range limits are a presentation concern:
// the services accept any range.
func dateRange(c *gin.Context, maxDays int) (from, to time.Time, ok bool) {
	from, err := model.ParseDate(c.Query("from_date"))
	if err != nil {
		badRequest(c, "from_date: "+err.Error())
		return from, to, false
	}
	to, err = model.ParseDate(c.Query("to_date"))
	if err != nil {
		badRequest(c, "to_date: "+err.Error())
		return from, to, false
	}
	if to.Before(from) {
		badRequest(c, "to_date must not be before from_date")
		return from, to, false
	}
	if int(to.Sub(from).Hours()/24) > maxDays {
		badRequest(c, fmt.Sprintf("Date range cannot exceed %d days", maxDays))
		return from, to, false
	}
	return from, to, true
}

// monthPath parses :year/:month path params.
func monthPath(c *gin.Context) (int, time.Month, bool) {
	year, month, err := model.ParseMonth(c.Param("year"), c.Param("month"))
	if err != nil {
		badRequest(c, err.Error())
		return 0, 0, false
	}
	return year, month, true
}

// priceTypeQuery reads the optional price_type param, defaulting to system.
// Validation happens in the services, which own the price-type vocabulary.
func priceTypeQuery(c *gin.Context) string {
	if t := c.Query("price_type"); t != "" {
		return t
	}
	return "system"
}
