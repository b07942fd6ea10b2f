package v1

import (
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/config"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	CORS      config.CORSConfig
	RateLimit config.RateLimitConfig
	Metrics   *metrics.Collector
	Log       *zap.Logger
}

func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(RequestID())
	r.Use(Recovery(cfg.Log))
	r.Use(Logger(cfg.Log))
	r.Use(Metrics(cfg.Metrics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORS.AllowedOrigins,
		AllowMethods:  cfg.CORS.AllowedMethods,
		AllowHeaders:  cfg.CORS.AllowedHeaders,
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        cfg.CORS.MaxAge,
	}))

	r.GET("/healthz", h.Health)
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	api := r.Group("/api/v1")
	api.Use(RateLimit(cfg.RateLimit, cfg.Metrics))
	{
		api.GET("/protocols", h.ListProtocols)
		api.GET("/protocols/:id", h.GetProtocol)
		api.GET("/search", h.Search)
		api.POST("/symptom-check", h.CheckSymptoms)
		api.POST("/triage", h.Triage)
		api.GET("/red-flags", h.ListRedFlags)
		api.GET("/contacts/template", h.ContactsTemplate)
	}

	return r
}
