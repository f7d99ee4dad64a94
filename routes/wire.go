package routes

import (
	"fmt"
	"time"

	"free-gift-coupon/config"
	"free-gift-coupon/controllers"
	"free-gift-coupon/logger"
	"free-gift-coupon/metrics"
	"free-gift-coupon/middleware"
	"free-gift-coupon/repositories"
	"free-gift-coupon/services"
	"free-gift-coupon/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const linkCacheTTL = 5 * time.Minute

// NewHandlers builds the repositories, services and controllers over live connections.
func NewHandlers(cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client, log *zap.Logger) (*Handlers, error) {
	tokens, err := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT settings: %w", err)
	}

	productRepo := repositories.NewProductRepository(db)
	couponRepo := repositories.NewCouponRepository(db, log)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)
	cartRepo := repositories.NewCartRepository(rdb, cfg.CartTTL)
	linkCache := repositories.NewLinkCache(rdb, linkCacheTTL)

	gifts := metrics.NewGifts()
	reconciler := services.NewReconciler(productRepo, log,
		services.WithQuantityClamp(cfg.GiftClampQuantity),
		services.WithMetrics(gifts),
	)

	couponService := services.NewCouponService(couponRepo, productRepo, orderRepo, linkCache, log)
	cartService := services.NewCartService(cartRepo, couponRepo, productRepo, couponService, reconciler, log)
	productService := services.NewProductService(productRepo)
	authService := services.NewAuthService(userRepo, tokens)

	return &Handlers{
		Auth:    controllers.NewAuthController(authService),
		Cart:    controllers.NewCartController(cartService),
		Coupons: controllers.NewCouponController(couponService, productService),
		Tokens:  tokens,
		Gifts:   gifts,
	}, nil
}

// NewRouter returns a gin engine with logging, recovery, CORS and every route mounted.
func NewRouter(cfg *config.Config, h *Handlers, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(logger.Recovery(log))
	router.Use(logger.GinMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	SetupRoutes(router, h)
	return router
}
