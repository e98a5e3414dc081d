package driver

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	drivers := r.Group("/drivers")
	{
		drivers.GET("", handler.GetAll)
		drivers.GET("/:id", handler.GetById)
		drivers.POST("", handler.Create)
		drivers.PUT("/:id", handler.Update)
		drivers.DELETE("/:id", handler.Delete)
	}
}
