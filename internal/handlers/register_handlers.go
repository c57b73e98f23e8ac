package handlers

import (
	"github.com/SscSPs/finance_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// APIBasePath prefixes every resource route.
const APIBasePath = "/api"

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware runs only for routes under APIBasePath.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	useJSONFieldNames()
	errs := errorResponder{exposeDetails: !cfg.IsProduction}

	registerHomeRoutes(r, services.Health)

	api := r.Group(APIBasePath, apiMiddleware...)
	registerProjectRoutes(api, services.Project, errs)
	registerAppointmentRoutes(api, services.Appointment, errs)

	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = APIBasePath
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
