package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"

	"github.com/energy-oracle/eo-api/internal/analytics"
	"github.com/energy-oracle/eo-api/internal/api/handlers"
	"github.com/energy-oracle/eo-api/internal/api/middleware"
	"github.com/energy-oracle/eo-api/internal/api/models"
	"github.com/energy-oracle/eo-api/internal/carbon"
	"github.com/energy-oracle/eo-api/internal/config"
	"github.com/energy-oracle/eo-api/internal/prices"
	"github.com/energy-oracle/eo-api/internal/settlement"
)

func main() {
	// Monetary fields serialize as JSON numbers, matching the documented
	// response schemas.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load(os.Getenv("EO_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := cfg.OpenStore()
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	contracts, err := settlement.LoadContracts(cfg.ContractDir)
	if err != nil {
		log.Fatalf("contracts: %v", err)
	}
	if len(contracts) > 0 {
		log.Printf("Loaded %d PPA contract presets from %s", len(contracts), cfg.ContractDir)
	}

	if cfg.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	priceService := prices.NewService(db)
	carbonService := carbon.NewService(db)
	analyticsService := analytics.NewService(db)
	settlementService := settlement.NewService(priceService, contracts)

	priceHandler := handlers.NewPriceHandler(priceService)
	carbonHandler := handlers.NewCarbonHandler(carbonService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	settlementHandler := handlers.NewSettlementHandler(settlementService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Health{
			Name:    cfg.APITitle,
			Version: cfg.APIVersion,
			Status:  "healthy",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Health{Status: "healthy"})
	})

	uk := router.Group("/uk")
	{
		p := uk.Group("/prices")
		{
			// Specific routes before parameterized ones.
			p.GET("/system/latest", priceHandler.Latest(prices.TypeSystem))
			p.GET("/system/range", priceHandler.Range(prices.TypeSystem))
			p.GET("/system/monthly-avg/:year/:month", priceHandler.MonthlyAverage(prices.TypeSystem))
			p.GET("/system/date/:date", priceHandler.ByDate(prices.TypeSystem))

			p.GET("/dayahead/latest", priceHandler.Latest(prices.TypeDayAhead))
			p.GET("/dayahead/monthly-avg/:year/:month", priceHandler.MonthlyAverage(prices.TypeDayAhead))
			p.GET("/dayahead/date/:date", priceHandler.ByDate(prices.TypeDayAhead))
		}

		cb := uk.Group("/carbon")
		{
			cb.GET("/intensity/current", carbonHandler.CurrentIntensity)
			cb.GET("/intensity/range/", carbonHandler.IntensityRange)
			cb.GET("/intensity/:date", carbonHandler.IntensityByDate)
			cb.GET("/fuelmix/current", carbonHandler.CurrentFuelMix)
			cb.GET("/fuelmix/:date", carbonHandler.FuelMixByDate)
		}

		an := uk.Group("/analytics")
		{
			an.GET("/prices/daily", analyticsHandler.DailyAverages)
			an.GET("/prices/weekly", analyticsHandler.WeeklyAverages)
			an.GET("/prices/peak-offpeak", analyticsHandler.PeakOffPeak)
			an.GET("/prices/statistics", analyticsHandler.PriceStatistics)
			an.GET("/prices/green-premium/:year/:month", analyticsHandler.GreenPremium)
			an.GET("/carbon/weighted-price", analyticsHandler.CarbonWeightedPrice)
			an.GET("/carbon/daily-summary", analyticsHandler.DailyCarbonSummaries)
			an.GET("/renewable/generation/:year/:month", analyticsHandler.RenewableGenerationIndex)
		}

		st := uk.Group("/settlement")
		{
			st.POST("/calculate", settlementHandler.Calculate)
			st.GET("/contracts", settlementHandler.Contracts)
		}
	}

	handler := cors.AllowAll().Handler(router)

	addr := cfg.Addr()
	log.Printf("Starting %s on %s (store=%s)", cfg.APITitle, addr, cfg.StoreBackend)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
