package job

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	jobs := r.Group("/jobs")
	{
		jobs.GET("", handler.GetAll)
		jobs.GET("/:id", handler.GetById)
		jobs.POST("", handler.Create)
		jobs.PUT("/:id", handler.Update)
		jobs.PATCH("/:id/status", handler.Transition)
		jobs.POST("/:id/lines", handler.AddLine)
		jobs.PUT("/:id/lines/:lineId", handler.UpdateLine)
		jobs.DELETE("/:id/lines/:lineId", handler.DeleteLine)
	}
}
