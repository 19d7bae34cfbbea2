package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"activity-service/internal/event"
	"activity-service/internal/handler"
	"activity-service/internal/metrics"
	"activity-service/internal/middleware"
	"activity-service/internal/repository"
	"activity-service/internal/service"
)

// Config holds the dependencies for the router
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer // nil serves the default registry
	Publisher      event.Publisher
	StaticDir      string
	AllowedOrigins []string
}

// Setup creates and configures the Gin router
func Setup(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Repositories
	store := repository.NewStore(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)

	// Services
	activityService := service.NewActivityService(activityRepo)
	rosterService := service.NewRosterService(store, cfg.Publisher, cfg.Metrics, cfg.Logger)

	// Handlers
	activityHandler := handler.NewActivityHandler(activityService, cfg.Logger)
	rosterHandler := handler.NewRosterHandler(rosterService, cfg.Logger)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis)

	// Health and metrics (outside the roster routes)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	} else {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.StaticDir != "" {
		r.Static("/static", cfg.StaticDir)
	}
	r.GET("/", activityHandler.Index)

	activities := r.Group("/activities")
	{
		activities.GET("", activityHandler.ListActivities)
		activities.POST("/:name/signup", rosterHandler.Signup)
		activities.DELETE("/:name/unregister", rosterHandler.Unregister)
	}

	return r
}
