package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mouakos/ecommerce-api/controllers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func DefaultRoutes(server *gin.Engine) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.GetHealth)
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
