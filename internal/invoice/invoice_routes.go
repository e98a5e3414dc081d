package invoice

import (
	"go-fleetops/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	invoices := r.Group("/invoices")
	{
		invoices.GET("", handler.GetAll)
		invoices.GET("/:id", handler.GetById)
		invoices.GET("/:id/pdf", handler.RenderPDF)
		if redisClient != nil {
			invoices.POST("", middleware.Idempotency(redisClient), handler.Create)
		} else {
			invoices.POST("", handler.Create)
		}
		invoices.POST("/:id/items", handler.AddItem)
		invoices.PUT("/:id/items/:itemId", handler.UpdateItem)
		invoices.DELETE("/:id/items/:itemId", handler.DeleteItem)
		invoices.POST("/:id/issue", handler.Issue)
		invoices.POST("/:id/cancel", handler.Cancel)
	}
}
