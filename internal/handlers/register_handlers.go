package handlers

import (
	"github.com/SscSPs/backoffice_ledger/cmd/docs"
	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/SscSPs/backoffice_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	RegisterAPIRoutes(v1, service)
}

// RegisterAPIRoutes registers every ledger route on rg. Authentication is the caller's concern.
func RegisterAPIRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	registerAccountRoutes(rg, service.Account, service.Balance, service.Journal)
	registerJournalRoutes(rg, service.Journal)
	registerPrepaymentRoutes(rg, service.Prepayment)
	registerCreditRoutes(rg, service.Credit)
	registerInvoiceRoutes(rg, service.Invoice)
	registerPayrollRoutes(rg, service.Payroll)
	registerFiscalYearRoutes(rg, service.FiscalYear)
	registerReportingRoutes(rg, service.Reporting)
	registerAdminRoutes(rg, service.Balance, service.Prepayment)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
