package client

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	clients := r.Group("/clients")
	{
		clients.GET("", handler.GetAll)
		clients.GET("/:id", handler.GetById)
		clients.POST("", handler.Create)
		clients.PUT("/:id", handler.Update)
		clients.DELETE("/:id", handler.Delete)
	}
}
