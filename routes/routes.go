package routes

import (
	"free-gift-coupon/controllers"
	"free-gift-coupon/metrics"
	"free-gift-coupon/middleware"
	"free-gift-coupon/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth    *controllers.AuthController
	Cart    *controllers.CartController
	Coupons *controllers.CouponController
	Tokens  *utils.TokenIssuer
	Gifts   *metrics.Gifts
}

func SetupRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(h.Gifts.Handler()))

	router.POST("/auth/register", h.Auth.Register)
	router.POST("/auth/login", h.Auth.Login)

	cart := router.Group("/cart")
	cart.Use(middleware.AuthMiddleware(h.Tokens))
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("/check", h.Cart.CheckCart)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:key", h.Cart.UpdateItem)
		cart.DELETE("/items/:key", h.Cart.RemoveItem)
		cart.POST("/coupons", h.Cart.ApplyCoupon)
		cart.DELETE("/coupons/:code", h.Cart.RemoveCoupon)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(h.Tokens), middleware.AdminMiddleware())
	{
		admin.GET("/coupons", h.Coupons.GetAllCoupons)
		admin.POST("/coupons", h.Coupons.CreateCoupon)
		admin.DELETE("/coupons/:id", h.Coupons.DeleteCoupon)
		admin.GET("/coupons/:id/free-product", h.Coupons.GetFreeProduct)
		admin.POST("/coupons/:id/free-product", h.Coupons.SaveFreeProduct)

		admin.GET("/products/search", h.Coupons.SearchProducts)
		admin.GET("/reports/coupons/:code/orders", h.Coupons.GetCouponOrders)
	}
}
