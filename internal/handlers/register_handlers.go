package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shokoko2010/Elhamd-sub014/cmd/docs"
	portssvc "github.com/shokoko2010/Elhamd-sub014/internal/core/ports/services"
	"github.com/shokoko2010/Elhamd-sub014/internal/middleware"
	"github.com/shokoko2010/Elhamd-sub014/internal/platform/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// v1Middleware runs on the /api/v1 group after authentication (rate limiting, analytics).
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	v1Middleware ...gin.HandlerFunc,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, v1Middleware)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	v1Middleware []gin.HandlerFunc,
) {
	chain := append([]gin.HandlerFunc{middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer)}, v1Middleware...)
	v1 := r.Group("/api/v1", chain...)

	RegisterAccountRoutes(v1, service.Account, service.Reporting)
	RegisterJournalRoutes(v1, service.Journal)
	RegisterPayrollRoutes(v1, service.Payroll)
	RegisterReportingRoutes(v1, service.Reporting)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
