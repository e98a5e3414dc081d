package settings

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/settings")
	{
		group.GET("", handler.GetAll)
		group.GET("/:key", handler.Get)
		group.PUT("/:key", handler.Upsert)
	}
}
