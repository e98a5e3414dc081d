package vehicle

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	vehicles := r.Group("/vehicles")
	{
		vehicles.GET("", handler.GetAll)
		vehicles.GET("/:id", handler.GetById)
		vehicles.POST("", handler.Create)
		vehicles.PUT("/:id", handler.Update)
		vehicles.DELETE("/:id", handler.Delete)
		vehicles.GET("/:id/service-records", handler.GetServiceRecords)
		vehicles.POST("/:id/service-records", handler.AddServiceRecord)
	}
}
