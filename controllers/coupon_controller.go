package controllers

import (
	"context"
	"net/http"
	"strconv"

	"free-gift-coupon/models"

	"github.com/gin-gonic/gin"
)

type CouponManager interface {
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, req models.CreateCouponRequest) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id int) error
	GetFreeProduct(ctx context.Context, couponID int) (*models.FreeProductResponse, error)
	SaveFreeProduct(ctx context.Context, couponID int, raw string) (*models.FreeProductResponse, error)
	OrderReport(ctx context.Context, code, start, end string) (*models.CouponOrderReport, error)
}

type ProductSearcher interface {
	Search(ctx context.Context, term string) ([]models.Product, error)
}

type CouponController struct {
	coupons  CouponManager
	products ProductSearcher
}

func NewCouponController(coupons CouponManager, products ProductSearcher) *CouponController {
	return &CouponController{coupons: coupons, products: products}
}

func couponIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: "Invalid coupon ID"})
		return 0, false
	}
	return id, true
}

// GetAllCoupons godoc
// @Summary Get all coupons
// @Description List coupons with the free product each one grants
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response
// @Router /admin/coupons [get]
func (ctrl *CouponController) GetAllCoupons(c *gin.Context) {
	coupons, err := ctrl.coupons.ListCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get coupons")
		return
	}
	respondOK(c, http.StatusOK, "Coupons retrieved", coupons)
}

// CreateCoupon godoc
// @Summary Create coupon
// @Tags Admin - Coupons
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.CreateCouponRequest true "Coupon"
// @Success 201 {object} models.Response
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/coupons [post]
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	var req models.CreateCouponRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	coupon, err := ctrl.coupons.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create coupon")
		return
	}
	respondOK(c, http.StatusCreated, "Coupon created", coupon)
}

// DeleteCoupon godoc
// @Summary Delete coupon
// @Description Delete a coupon together with its free product link
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/coupons/{id} [delete]
func (ctrl *CouponController) DeleteCoupon(c *gin.Context) {
	id, ok := couponIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.coupons.DeleteCoupon(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete coupon")
		return
	}
	respondOK(c, http.StatusOK, "Coupon deleted", nil)
}

// GetFreeProduct godoc
// @Summary Get coupon free product
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param id path int true "Coupon ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/coupons/{id}/free-product [get]
func (ctrl *CouponController) GetFreeProduct(c *gin.Context) {
	id, ok := couponIDParam(c)
	if !ok {
		return
	}

	resp, err := ctrl.coupons.GetFreeProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get free product")
		return
	}
	respondOK(c, http.StatusOK, "Free product retrieved", resp)
}

// SaveFreeProduct godoc
// @Summary Save coupon free product
// @Description Link one product to the coupon. Submit an empty freeproduct to remove the link.
// @Tags Admin - Coupons
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Coupon ID"
// @Param freeproduct formData string false "Product ID"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/coupons/{id}/free-product [post]
func (ctrl *CouponController) SaveFreeProduct(c *gin.Context) {
	id, ok := couponIDParam(c)
	if !ok {
		return
	}

	var req models.SaveFreeProductRequest
	if err := c.ShouldBind(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	resp, err := ctrl.coupons.SaveFreeProduct(c.Request.Context(), id, req.FreeProduct)
	if err != nil {
		respondError(c, err, "Failed to save free product")
		return
	}
	respondOK(c, http.StatusOK, "Free product saved", resp)
}

// GetCouponOrders godoc
// @Summary Orders by coupon code
// @Description Orders that redeemed a coupon within a date range, with the summed discount
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param code path string true "Coupon code"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/reports/coupons/{code}/orders [get]
func (ctrl *CouponController) GetCouponOrders(c *gin.Context) {
	report, err := ctrl.coupons.OrderReport(c.Request.Context(), c.Param("code"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondError(c, err, "Failed to get coupon orders")
		return
	}
	respondOK(c, http.StatusOK, "Coupon orders retrieved", report)
}

// SearchProducts godoc
// @Summary Search products
// @Description Product lookup for the coupon free product field
// @Tags Admin - Coupons
// @Security BearerAuth
// @Produce json
// @Param term query string true "Name or ID"
// @Success 200 {object} models.Response
// @Router /admin/products/search [get]
func (ctrl *CouponController) SearchProducts(c *gin.Context) {
	products, err := ctrl.products.Search(c.Request.Context(), c.Query("term"))
	if err != nil {
		respondError(c, err, "Failed to search products")
		return
	}

	options := make([]gin.H, 0, len(products))
	for _, p := range products {
		options = append(options, gin.H{"id": p.ID, "text": p.FormattedName()})
	}
	respondOK(c, http.StatusOK, "Products retrieved", options)
}
