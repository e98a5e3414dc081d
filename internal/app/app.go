package app

import (
	"os"

	"go-fleetops/internal/middleware"
	"go-fleetops/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	// 1. Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	// 2. Schema
	if os.Getenv("DB_AUTO_MIGRATE") != "false" {
		if err := autoMigrate(gormDB); err != nil {
			return err
		}
		zap.L().Info("database schema migrated")
	}

	// 3. Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(50, 100))

	// 4. Modules & routes
	return registerModules(router, db, gormDB, redisClient)
}
