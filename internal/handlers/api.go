package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	config "github.com/thirdweb-dev/walletbridge/configs"
	"github.com/thirdweb-dev/walletbridge/internal/middleware"
)

// Handler registers every route on r.
func Handler(r *gin.Engine, cfg config.APIConfig) {
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	root := r.Group("/")
	{
		root.Use(middleware.Authorization(cfg.BasicAuth))
		root.GET("/provider/state", GetProviderState)
		root.GET("/:address/transactions", GetTransactions)
		root.GET("/:address/state", GetContractState)
	}
}
