package product

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	{
		products.GET("", handler.GetAll)
		products.GET("/options", handler.GetOptions)
		products.GET("/:id", handler.GetById)
		products.POST("", handler.Create)
		products.PUT("/:id", handler.Update)
		products.DELETE("/:id", handler.Delete)
	}
}
