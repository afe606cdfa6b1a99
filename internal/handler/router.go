package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jcardenas/techstore/internal/health"
	"github.com/jcardenas/techstore/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type RouterConfig struct {
	Customers  *CustomerHandler
	Products   *ProductHandler
	Carts      *CartHandler
	Orders     *OrderHandler
	Storefront *StorefrontHandler

	Metrics       *metrics.StoreMetrics
	Logger        *logrus.Logger
	Checkers      []health.Checker
	TemplatesGlob string
	StaticDir     string
}

// NewRouter assembles the gin engine: JSON API under /api, the storefront at
// the root, plus /healthz and /metrics.
func NewRouter(cfg RouterConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestMetrics(cfg.Metrics))

	if cfg.TemplatesGlob != "" {
		engine.LoadHTMLGlob(cfg.TemplatesGlob)
	}
	if cfg.StaticDir != "" {
		engine.Static("/static", cfg.StaticDir)
	}

	api := engine.Group("/api")
	cfg.Customers.Register(api)
	cfg.Products.Register(api)
	cfg.Carts.Register(api)
	cfg.Orders.Register(api)

	if cfg.Storefront != nil {
		cfg.Storefront.Register(engine)
	}

	engine.GET("/healthz", health.Handler(cfg.Logger, cfg.Checkers...))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return engine
}

// requestMetrics observes every request by method, route template and status.
func requestMetrics(m *metrics.StoreMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequest(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
