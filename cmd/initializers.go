package main

import (
	"fmt"
	"net/http"
	"time"

	"voltshop/app/handler"
	"voltshop/app/router"
	"voltshop/internal/jobs"
	"voltshop/internal/service"
	"voltshop/pkg/config"
	"voltshop/pkg/enums"
	"voltshop/pkg/logger"
	queue "voltshop/pkg/queue/asynq"
	mysqlstore "voltshop/pkg/store/mysql"
	redisstore "voltshop/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.Sync()
	})
	return nil
}

// initEnums loads the shared enumeration registry
func (app *Application) initEnums() error {
	path := app.config.Catalog.EnumsPath
	if path == "" {
		path = "config/enums.yaml"
	}

	registry, err := enums.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load enumerations from %s: %w", path, err)
	}

	app.registry = registry
	return nil
}

// initMySQL initializes MySQL
func (app *Application) initMySQL() error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		app.config.MySQL.User,
		app.config.MySQL.Password,
		app.config.MySQL.Host,
		app.config.MySQL.Port,
		app.config.MySQL.Database,
	)

	repo, err := mysqlstore.NewRepository(dsn)
	if err != nil {
		return err
	}

	app.mysqlRepo = repo
	app.registerCleanup(func() {
		repo.Close()
		logger.InfoCtx(app.ctx, "MySQL connection has been closed")
	})

	return nil
}

// initRedis initializes Redis and the verdict cache on top of it
func (app *Application) initRedis() error {
	client, err := redisstore.NewRedisClient(app.config)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	ttl := time.Duration(app.config.Catalog.VerdictCacheTTL) * time.Second
	app.verdictCache = redisstore.NewVerdictCache(client.GetClient(), ttl)

	return nil
}

// initQueue initializes the background queue manager
func (app *Application) initQueue() error {
	manager, err := queue.NewManager(app.config)
	if err != nil {
		return err
	}

	app.queueManager = manager
	app.registerCleanup(func() {
		manager.Close()
		logger.InfoCtx(app.ctx, "Queue client has been closed")
	})

	return nil
}

// initServices initializes service layer
func (app *Application) initServices() error {
	repo := app.mysqlRepo

	app.categoryService = service.NewCategoryService(repo.Category)
	app.templateService = service.NewTemplateService(repo.Category, repo.Template, app.registry)
	app.ruleService = service.NewRuleService(repo.Category, repo.Template, repo.Rule, app.verdictCache)
	app.productService = service.NewProductService(
		repo.Category, repo.Template, repo.Product, repo.ProductSpec, repo.Rule, app.registry)
	app.compatibilityService = service.NewCompatibilityService(
		repo.Category, repo.Template, repo.Product, repo.ProductSpec, app.ruleService, app.verdictCache)
	app.statisticsService = service.NewStatisticsService(
		repo.Category, repo.Template, repo.Product, repo.ProductSpec)

	return nil
}

// initJobs registers queued job handlers
func (app *Application) initJobs() error {
	bulkApply := jobs.NewBulkApplyHandler(app.productService)
	bulkApply.Register(app.queueManager)
	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.categoryHandler = handler.NewCategoryHandler(app.categoryService)
	app.templateHandler = handler.NewTemplateHandler(app.templateService)
	app.ruleHandler = handler.NewRuleHandler(app.ruleService)
	app.productHandler = handler.NewProductHandler(app.productService, app.queueManager)
	app.compatibilityHandler = handler.NewCompatibilityHandler(app.compatibilityService)
	app.configuratorHandler = handler.NewConfiguratorHandler(app.compatibilityService)
	app.statisticsHandler = handler.NewStatisticsHandler(app.statisticsService)
	return nil
}

// initHTTPServer initializes the gin engine and HTTP server
func (app *Application) initHTTPServer() error {
	gin.SetMode(app.config.Server.Mode)
	app.ginEngine = gin.New()

	r := router.NewRouter(
		app.categoryHandler,
		app.templateHandler,
		app.ruleHandler,
		app.productHandler,
		app.compatibilityHandler,
		app.configuratorHandler,
		app.statisticsHandler,
	)
	r.Setup(app.ginEngine)

	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}

	return nil
}
