package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"free-gift-coupon/config"
	"free-gift-coupon/logger"
	"free-gift-coupon/models"
	"free-gift-coupon/routes"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	router  *gin.Engine
	log     *zap.Logger
	initErr error
	once    sync.Once
)

// initApp builds the engine once per serverless instance. Migrations are left to the deploy step.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		cfg := config.AppConfig
		log = logger.NewForEnvironment(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat)

		ctx := context.Background()
		db, err := config.ConnectDB(ctx, cfg, log)
		if err != nil {
			initErr = err
			return
		}

		rdb := config.ConnectRedis(ctx, cfg, log)
		if rdb == nil {
			initErr = errors.New("redis unavailable")
			return
		}

		handlers, err := routes.NewHandlers(cfg, db, rdb, log)
		if err != nil {
			initErr = err
			return
		}

		router = routes.NewRouter(cfg, handlers, log)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		log.Error("Handler initialisation failed", zap.Error(initErr))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{Success: false, Message: "Service unavailable"})
		return
	}
	router.ServeHTTP(w, r)
}
