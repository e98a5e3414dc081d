package attachment

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attachments := r.Group("/attachments")
	{
		attachments.GET("", handler.GetAll)
		attachments.GET("/:id", handler.GetById)
		attachments.GET("/:id/content", handler.GetContent)
		attachments.POST("", handler.Create)
		attachments.DELETE("/:id", handler.Delete)
	}
}
