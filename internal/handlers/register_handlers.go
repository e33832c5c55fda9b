package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	portssvc "github.com/rahmannascenia/accountingbolt/internal/core/ports/services"
	"github.com/rahmannascenia/accountingbolt/internal/middleware"
	"github.com/rahmannascenia/accountingbolt/internal/platform/config"
)

// currencyValidator accepts three-letter uppercase-convertible codes.
func currencyValidator(fl validator.FieldLevel) bool {
	code := strings.ToUpper(fl.Field().String())
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// RegisterRoutes wires all HTTP routes onto the engine.
func RegisterRoutes(engine *gin.Engine, services *portssvc.ServiceContainer, cfg *config.AppConfig) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Registration fails only for an empty tag; safe to ignore here.
		_ = v.RegisterValidation("currency", currencyValidator)
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if !cfg.IsProduction {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	rateHandler := NewExchangeRateHandler(services.ExchangeRate)
	reportingHandler := NewReportingHandler(services.Reporting)

	v1 := engine.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		reports := v1.Group("/reports")
		{
			reports.GET("/trial-balance", reportingHandler.TrialBalance)
			reports.GET("/balance-sheet", reportingHandler.BalanceSheet)
			reports.GET("/ar-breakdown", reportingHandler.ARBreakdown)
			reports.GET("/revaluation", reportingHandler.RevaluationPreview)
		}

		rates := v1.Group("/exchange-rates")
		{
			rates.POST("", rateHandler.ApplyManualRate)
			rates.GET("", rateHandler.ListRates)
			rates.GET("/:from/:to", rateHandler.ResolveRate)
		}
	}
}
