package shift

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	shifts := r.Group("/shifts")
	{
		shifts.GET("", handler.GetAll)
		shifts.GET("/:id", handler.GetById)
		shifts.POST("", handler.Create)
		shifts.POST("/start", handler.Start)
		shifts.POST("/:id/end", handler.End)
		shifts.PUT("/:id", handler.Update)
		shifts.PATCH("/:id/status", handler.Transition)
	}
}
