package fuel

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	purchases := r.Group("/fuel-purchases")
	{
		purchases.GET("", handler.GetAll)
		purchases.GET("/:id", handler.GetById)
		purchases.POST("", handler.Create)
		purchases.PUT("/:id", handler.Update)
		purchases.DELETE("/:id", handler.Delete)
	}
}
