package app

import (
	"database/sql"

	"go-fleetops/internal/attachment"
	"go-fleetops/internal/client"
	"go-fleetops/internal/driver"
	"go-fleetops/internal/fuel"
	"go-fleetops/internal/invoice"
	"go-fleetops/internal/job"
	"go-fleetops/internal/messaging/kafka"
	"go-fleetops/internal/product"
	"go-fleetops/internal/settings"
	"go-fleetops/internal/shared/counter"
	"go-fleetops/internal/shift"
	"go-fleetops/internal/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attachmentRepo := attachment.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	driverRepo := driver.NewRepository(gormDB)
	fuelRepo := fuel.NewRepository(gormDB)
	invoiceRepo := invoice.NewRepository(gormDB)
	jobRepo := job.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	productRepo := product.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	shiftRepo := shift.NewRepository(gormDB)
	vehicleRepo := vehicle.NewRepository(gormDB)

	// --- Services ---
	attachmentService := attachment.NewService(db, attachmentRepo)
	clientService := client.NewService(db, clientRepo)
	driverService := driver.NewService(db, driverRepo)
	fuelService := fuel.NewService(db, fuelRepo)
	invoiceService := invoice.NewServiceWithOutbox(db, invoiceRepo, counterRepo, outboxRepo)
	jobService := job.NewServiceWithOutbox(db, jobRepo, counterRepo, outboxRepo)
	productService := product.NewService(db, productRepo, rdb)
	settingsService := settings.NewService(db, settingsRepo, rdb)
	shiftService := shift.NewService(db, shiftRepo)
	vehicleService := vehicle.NewService(db, vehicleRepo)

	// --- Handlers ---
	attachmentHandler := attachment.NewHandler(attachmentService)
	clientHandler := client.NewHandler(clientService)
	driverHandler := driver.NewHandler(driverService)
	fuelHandler := fuel.NewHandler(fuelService)
	invoiceHandler := invoice.NewHandlerWithRedis(invoiceService, rdb)
	jobHandler := job.NewHandler(jobService)
	productHandler := product.NewHandler(productService)
	settingsHandler := settings.NewHandler(settingsService)
	shiftHandler := shift.NewHandler(shiftService)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attachment.RegisterRoutes(api, attachmentHandler)
		client.RegisterRoutes(api, clientHandler)
		driver.RegisterRoutes(api, driverHandler)
		fuel.RegisterRoutes(api, fuelHandler)
		invoice.RegisterRoutes(api, invoiceHandler, rdb)
		job.RegisterRoutes(api, jobHandler)
		product.RegisterRoutes(api, productHandler)
		settings.RegisterRoutes(api, settingsHandler)
		shift.RegisterRoutes(api, shiftHandler)
		vehicle.RegisterRoutes(api, vehicleHandler)
	}

	return nil
}
