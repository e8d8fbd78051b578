package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campushq/campus-chatbot-go/internal/buildinfo"
	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/storage"
	"github.com/campushq/campus-chatbot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, handler *webhook.Handler, db *storage.DB, registry *prometheus.Registry, cfg *config.Config) {
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.ServerName,
			"version": buildinfo.Version,
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe. Never checks dependencies, only that the process
	// is serving requests.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness probe: catalog reachable plus row counts so operators can
	// spot an unseeded deployment at a glance.
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		counts, err := db.TableCounts(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"catalog": counts,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Message endpoints
	router.POST("/chat", handler.HandleChat)
	if cfg.TwilioEnabled {
		router.POST("/twilio", handler.HandleTwilio)
	}

	// Prometheus metrics, with optional basic auth for public deployments
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsAuthEnabled {
		authorized := gin.BasicAuth(gin.Accounts{cfg.MetricsUsername: cfg.MetricsPassword})
		router.GET("/metrics", authorized, metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}
