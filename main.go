package main

import (
	"context"
	"os"

	"free-gift-coupon/config"
	_ "free-gift-coupon/docs"
	"free-gift-coupon/logger"
	"free-gift-coupon/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Free Gift Coupon API
// @version 1.0
// @description Coupons that add a free product to the shopper's cart.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	envLoaded := config.LoadConfig()
	cfg := config.AppConfig

	log := logger.NewForEnvironment(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if !envLoaded {
		log.Info("No .env file found, using environment variables")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx := context.Background()

	db, err := config.ConnectDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := config.RunMigrations(cfg, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	rdb := config.ConnectRedis(ctx, cfg, log)
	if rdb == nil {
		log.Error("Redis is required for cart sessions")
		os.Exit(1)
	}
	defer rdb.Close()

	handlers, err := routes.NewHandlers(cfg, db, rdb, log)
	if err != nil {
		log.Fatal("Failed to build handlers", zap.Error(err))
	}

	router := routes.NewRouter(cfg, handlers, log)

	port := ":" + cfg.Port
	log.Info("Server starting",
		zap.String("port", port),
		zap.String("environment", cfg.AppEnv),
		zap.Bool("gift_clamp_quantity", cfg.GiftClampQuantity),
		zap.String("swagger", "http://localhost:"+cfg.Port+"/swagger/index.html"),
	)

	if err := router.Run(port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
