package controllers

import (
	"context"
	"net/http"

	"free-gift-coupon/models"

	"github.com/gin-gonic/gin"
)

type CartManager interface {
	Check(ctx context.Context, userID int) (*models.CartResponse, error)
	AddItem(ctx context.Context, userID int, productID models.ProductID, quantity int) (*models.CartResponse, error)
	UpdateItem(ctx context.Context, userID int, key string, quantity int) (*models.CartResponse, error)
	RemoveItem(ctx context.Context, userID int, key string) (*models.CartResponse, error)
	ApplyCoupon(ctx context.Context, userID int, code string) (*models.CartResponse, error)
	RemoveCoupon(ctx context.Context, userID int, code string) (*models.CartResponse, error)
}

type CartController struct {
	cart CartManager
}

func NewCartController(cart CartManager) *CartController {
	return &CartController{cart: cart}
}

// GetCart godoc
// @Summary Get user cart
// @Description Get the current cart. Free gift lines are reconciled with the applied coupons first.
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	resp, err := ctrl.cart.Check(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}
	respondOK(c, http.StatusOK, "Cart retrieved", resp)
}

// CheckCart godoc
// @Summary Check cart
// @Description Run the free gift reconciliation pass on the current cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /cart/check [post]
func (ctrl *CartController) CheckCart(c *gin.Context) {
	resp, err := ctrl.cart.Check(c.Request.Context(), c.GetInt("user_id"))
	if err != nil {
		respondError(c, err, "Failed to check cart")
		return
	}
	respondOK(c, http.StatusOK, "Cart checked", resp)
}

// AddItem godoc
// @Summary Add to cart
// @Description Add product to cart
// @Tags Cart
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param product_id formData int true "Product ID"
// @Param quantity formData int true "Quantity"
// @Success 201 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	resp, err := ctrl.cart.AddItem(c.Request.Context(), c.GetInt("user_id"), models.ProductID(req.ProductID), req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to add to cart")
		return
	}
	respondOK(c, http.StatusCreated, "Added to cart successfully", resp)
}

// UpdateItem godoc
// @Summary Update cart item
// @Description Change the quantity of a cart line
// @Tags Cart
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param key path string true "Cart line key"
// @Param quantity formData int true "Quantity"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{key} [patch]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	var req models.UpdateCartItemRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	resp, err := ctrl.cart.UpdateItem(c.Request.Context(), c.GetInt("user_id"), c.Param("key"), req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}
	respondOK(c, http.StatusOK, "Cart updated successfully", resp)
}

// RemoveItem godoc
// @Summary Remove cart item
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param key path string true "Cart line key"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/items/{key} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	resp, err := ctrl.cart.RemoveItem(c.Request.Context(), c.GetInt("user_id"), c.Param("key"))
	if err != nil {
		respondError(c, err, "Failed to remove cart item")
		return
	}
	respondOK(c, http.StatusOK, "Cart item removed", resp)
}

// ApplyCoupon godoc
// @Summary Apply coupon
// @Description Apply a coupon code to the cart. A linked free product is added automatically.
// @Tags Cart
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param code formData string true "Coupon code"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/coupons [post]
func (ctrl *CartController) ApplyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	resp, err := ctrl.cart.ApplyCoupon(c.Request.Context(), c.GetInt("user_id"), req.Code)
	if err != nil {
		respondError(c, err, "Failed to apply coupon")
		return
	}
	respondOK(c, http.StatusOK, "Coupon applied", resp)
}

// RemoveCoupon godoc
// @Summary Remove coupon
// @Description Remove a coupon code from the cart. Its free product is removed automatically.
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param code path string true "Coupon code"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/coupons/{code} [delete]
func (ctrl *CartController) RemoveCoupon(c *gin.Context) {
	resp, err := ctrl.cart.RemoveCoupon(c.Request.Context(), c.GetInt("user_id"), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to remove coupon")
		return
	}
	respondOK(c, http.StatusOK, "Coupon removed", resp)
}
