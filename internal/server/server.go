// Package server wires the ledger service into a gin HTTP router: the JSON
// API, the prometheus endpoint, and static file serving for the UI.
package server

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veldspar/sitepay/internal/config"
	"github.com/veldspar/sitepay/internal/middleware"
	"github.com/veldspar/sitepay/internal/service"
)

// New builds the router for the given service. cfg may carry an empty
// StaticPath to disable static serving (used by tests).
func New(cfg *config.Config, svc *service.LedgerService) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(), middleware.Metrics())

	h := &handlers{svc: svc}

	api := router.Group("/api")
	{
		api.GET("/data", h.getData)
		api.POST("/data", h.saveData)
		api.GET("/config", h.getConfig)
		api.POST("/config", h.saveConfig)
		api.POST("/calculate", h.calculate)
		api.GET("/export", h.exportData)
		api.POST("/import", h.importData)

		api.POST("/members", h.addMembers)
		api.PATCH("/members/:id", h.updateMember)
		api.DELETE("/members/:id", h.removeMember)

		api.POST("/sites", h.addSite)
		api.PUT("/sites/:id", h.updateSite)
		api.DELETE("/sites/:id", h.removeSite)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.StaticPath != "" {
		if _, err := os.Stat(cfg.StaticPath); err == nil {
			router.StaticFile("/", cfg.StaticPath+"/index.html")
			router.Static("/static", cfg.StaticPath)
		}
	}

	return router
}
