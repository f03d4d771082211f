package router

import (
	"voltshop/app/handler"
	"voltshop/app/middleware"

	"github.com/gin-gonic/gin"
)

// Router Router
type Router struct {
	categoryHandler      *handler.CategoryHandler
	templateHandler      *handler.TemplateHandler
	ruleHandler          *handler.RuleHandler
	productHandler       *handler.ProductHandler
	compatibilityHandler *handler.CompatibilityHandler
	configuratorHandler  *handler.ConfiguratorHandler
	statisticsHandler    *handler.StatisticsHandler
}

// NewRouter creates a new Router
func NewRouter(
	categoryHandler *handler.CategoryHandler,
	templateHandler *handler.TemplateHandler,
	ruleHandler *handler.RuleHandler,
	productHandler *handler.ProductHandler,
	compatibilityHandler *handler.CompatibilityHandler,
	configuratorHandler *handler.ConfiguratorHandler,
	statisticsHandler *handler.StatisticsHandler,
) *Router {
	return &Router{
		categoryHandler:      categoryHandler,
		templateHandler:      templateHandler,
		ruleHandler:          ruleHandler,
		productHandler:       productHandler,
		compatibilityHandler: compatibilityHandler,
		configuratorHandler:  configuratorHandler,
		statisticsHandler:    statisticsHandler,
	}
}

// Setup sets up routes
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger())

	api := engine.Group("/api/v1")
	{
		// Storefront reads, no authentication
		categories := api.Group("/categories")
		{
			categories.GET("", r.categoryHandler.ListCategories)
			categories.GET("/:id", r.categoryHandler.GetCategory)
			categories.GET("/:id/children", r.categoryHandler.ListSubcategories)
			categories.GET("/:id/templates", r.templateHandler.ListTemplatesForCategory)
			categories.GET("/:id/products", r.productHandler.ListProductsByCategory)
		}

		api.GET("/products/:id", r.productHandler.GetProduct)
		api.GET("/templates/:id", r.templateHandler.GetTemplate)
		api.GET("/rules", r.ruleHandler.ListRules)

		// Configurator
		configurator := api.Group("/configurator")
		{
			configurator.GET("/categories", r.categoryHandler.ListPCComponents)
			configurator.POST("/check", r.compatibilityHandler.CheckCompatibility)
			configurator.GET("/session", r.configuratorHandler.Session) // WebSocket
		}

		// Completeness reporting
		statistics := api.Group("/statistics")
		{
			statistics.GET("/products/:id/completeness", r.statisticsHandler.GetProductCompleteness)
			statistics.GET("/categories/:id/completeness", r.statisticsHandler.GetCategoryCompleteness)
		}

		// Catalog administration, token protected
		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware())
		{
			admin.POST("/categories", r.categoryHandler.CreateCategory)

			admin.POST("/templates", r.templateHandler.CreateTemplate)
			admin.PUT("/templates/:id", r.templateHandler.UpdateTemplate)
			admin.DELETE("/templates/:id", r.templateHandler.DeleteTemplate)

			admin.POST("/rules", r.ruleHandler.CreateRule)
			admin.PUT("/rules/:id/active", r.ruleHandler.SetRuleActive)
			admin.DELETE("/rules/:id", r.ruleHandler.DeleteRule)

			admin.POST("/products", r.productHandler.CreateProduct)
			admin.DELETE("/products/:id", r.productHandler.DeleteProduct)
			admin.POST("/products/specifications/bulk", r.productHandler.BulkApplySpecification)
		}
	}

	// Health check
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
