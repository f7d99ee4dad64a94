package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"free-gift-coupon/models"
	"free-gift-coupon/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type couponFixture struct {
	coupons  *MockCouponStore
	products *MockProductStore
	orders   *MockOrderStore
	cache    *memoryLinkCache
	service  *CouponService
}

func newCouponFixture() *couponFixture {
	f := &couponFixture{
		coupons:  new(MockCouponStore),
		products: new(MockProductStore),
		orders:   new(MockOrderStore),
		cache:    &memoryLinkCache{},
	}
	f.service = NewCouponService(f.coupons, f.products, f.orders, f.cache, zap.NewNop())
	return f
}

func productIDPtr(id models.ProductID) *models.ProductID {
	return &id
}

func TestCouponService_ListCouponsFillsFreeProductColumn(t *testing.T) {
	f := newCouponFixture()
	ctx := context.Background()

	f.coupons.On("List", ctx).Return([]models.Coupon{
		{ID: 1, Code: "SUMMER10", FreeProductID: productIDPtr(42)},
		{ID: 2, Code: "PLAIN"},
		{ID: 3, Code: "STALE", FreeProductID: productIDPtr(99)},
	}, nil)
	f.products.On("GetByIDs", ctx, []models.ProductID{42, 99}).Return(map[models.ProductID]models.Product{
		42: {ID: 42, Name: "Tote bag"},
	}, nil)

	coupons, err := f.service.ListCoupons(ctx)
	require.NoError(t, err)
	require.Len(t, coupons, 3)
	assert.Equal(t, "Tote bag (#42)", coupons[0].FreeProductName)
	assert.Equal(t, models.NoFreeProductLabel, coupons[1].FreeProductName)
	assert.Equal(t, models.NoFreeProductLabel, coupons[2].FreeProductName)
}

func TestCouponService_CreateCoupon(t *testing.T) {
	f := newCouponFixture()
	ctx := context.Background()

	_, err := f.service.CreateCoupon(ctx, models.CreateCouponRequest{Code: "   "})
	assert.ErrorIs(t, err, ErrInvalidCouponCode)

	f.coupons.On("Create", ctx, mock.MatchedBy(func(c *models.Coupon) bool {
		return c.Code == "SUMMER10"
	})).Return(nil).Once()
	coupon, err := f.service.CreateCoupon(ctx, models.CreateCouponRequest{Code: " SUMMER10 "})
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", coupon.Code)

	f.coupons.On("Create", ctx, mock.Anything).Return(repositories.ErrDuplicate).Once()
	_, err = f.service.CreateCoupon(ctx, models.CreateCouponRequest{Code: "SUMMER10"})
	assert.ErrorIs(t, err, ErrCouponAlreadyExists)
}

func TestCouponService_DeleteCouponInvalidatesLinks(t *testing.T) {
	f := newCouponFixture()
	ctx := context.Background()

	f.coupons.On("Delete", ctx, 1).Return(nil)
	f.coupons.On("Delete", ctx, 2).Return(repositories.ErrNotFound)

	require.NoError(t, f.service.DeleteCoupon(ctx, 1))
	assert.Equal(t, 1, f.cache.invalidations)

	assert.ErrorIs(t, f.service.DeleteCoupon(ctx, 2), ErrCouponNotFound)
	assert.Equal(t, 1, f.cache.invalidations)
}

func TestCouponService_SaveFreeProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("links existing product", func(t *testing.T) {
		f := newCouponFixture()
		f.coupons.On("GetByID", ctx, 1).Return(&models.Coupon{ID: 1, Code: "SUMMER10"}, nil)
		f.products.On("GetByID", ctx, models.ProductID(42)).Return(&models.Product{ID: 42, Name: "Tote bag"}, nil)
		f.coupons.On("SaveLink", ctx, 1, productIDPtr(42)).Return(nil)

		resp, err := f.service.SaveFreeProduct(ctx, 1, "42")
		require.NoError(t, err)
		require.NotNil(t, resp.ProductID)
		assert.Equal(t, models.ProductID(42), *resp.ProductID)
		assert.Equal(t, "Tote bag (#42)", resp.ProductName)
		assert.Equal(t, 1, f.cache.invalidations)
		f.coupons.AssertExpectations(t)
	})

	t.Run("empty value clears link", func(t *testing.T) {
		f := newCouponFixture()
		f.coupons.On("GetByID", ctx, 1).Return(&models.Coupon{ID: 1, Code: "SUMMER10"}, nil)
		f.coupons.On("SaveLink", ctx, 1, (*models.ProductID)(nil)).Return(nil)

		resp, err := f.service.SaveFreeProduct(ctx, 1, "")
		require.NoError(t, err)
		assert.Nil(t, resp.ProductID)
		assert.Equal(t, models.NoFreeProductLabel, resp.ProductName)
		f.coupons.AssertExpectations(t)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		f := newCouponFixture()
		f.coupons.On("GetByID", ctx, 1).Return(&models.Coupon{ID: 1}, nil)

		_, err := f.service.SaveFreeProduct(ctx, 1, "-5")
		assert.ErrorIs(t, err, ErrInvalidProductID)
		f.coupons.AssertNotCalled(t, "SaveLink", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		f := newCouponFixture()
		f.coupons.On("GetByID", ctx, 1).Return(&models.Coupon{ID: 1}, nil)
		f.products.On("GetByID", ctx, models.ProductID(7)).Return(nil, repositories.ErrNotFound)

		_, err := f.service.SaveFreeProduct(ctx, 1, "7")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("unknown coupon", func(t *testing.T) {
		f := newCouponFixture()
		f.coupons.On("GetByID", ctx, 9).Return(nil, repositories.ErrNotFound)

		_, err := f.service.SaveFreeProduct(ctx, 9, "42")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}

func TestCouponService_GetFreeProduct(t *testing.T) {
	ctx := context.Background()

	f := newCouponFixture()
	f.coupons.On("GetByID", ctx, 1).Return(&models.Coupon{ID: 1, Code: "SUMMER10"}, nil)
	f.coupons.On("GetLinkedProduct", ctx, 1).Return(models.ProductID(42), true, nil)
	f.products.On("GetByID", ctx, models.ProductID(42)).Return(&models.Product{ID: 42, Name: "Tote bag"}, nil)

	resp, err := f.service.GetFreeProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "SUMMER10", resp.CouponCode)
	assert.Equal(t, "Tote bag (#42)", resp.ProductName)

	f = newCouponFixture()
	f.coupons.On("GetByID", ctx, 2).Return(&models.Coupon{ID: 2, Code: "PLAIN"}, nil)
	f.coupons.On("GetLinkedProduct", ctx, 2).Return(models.ProductID(0), false, nil)

	resp, err = f.service.GetFreeProduct(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, resp.ProductID)
	assert.Equal(t, models.NoFreeProductLabel, resp.ProductName)
}

func TestCouponService_ListLinksUsesCache(t *testing.T) {
	f := newCouponFixture()
	ctx := context.Background()
	links := []models.CouponFreeProductLink{{CouponID: 1, CouponCode: "SUMMER10", ProductID: 42}}

	f.coupons.On("ListLinks", ctx).Return(links, nil).Once()

	got, err := f.service.ListLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, links, got)

	got, err = f.service.ListLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, links, got)
	f.coupons.AssertNumberOfCalls(t, "ListLinks", 1)
}

func TestCouponService_ListLinksPropagatesStorageError(t *testing.T) {
	f := newCouponFixture()
	ctx := context.Background()
	f.coupons.On("ListLinks", ctx).Return(nil, errors.New("db down"))

	_, err := f.service.ListLinks(ctx)
	assert.Error(t, err)
	assert.False(t, f.cache.cached)
}

func TestCouponService_OrderReport(t *testing.T) {
	f := newCouponFixture()
	ctx := context.Background()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	f.orders.On("ListByCouponCode", ctx, "SUMMER10", start, end).Return([]models.CouponOrder{
		{OrderID: 1, Total: 5000, TotalDiscount: 500},
		{OrderID: 2, Total: 3000, TotalDiscount: 250},
	}, nil)

	report, err := f.service.OrderReport(ctx, "SUMMER10", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 750, report.FullDiscount)
	assert.Equal(t, "2026-01-01", report.StartDate)

	_, err = f.service.OrderReport(ctx, "SUMMER10", "01/01/2026", "")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = f.service.OrderReport(ctx, "SUMMER10", "2026-02-01", "2026-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestProductService_Search(t *testing.T) {
	products := new(MockProductStore)
	service := NewProductService(products)
	ctx := context.Background()

	got, err := service.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, got)
	products.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)

	products.On("Search", ctx, "tote", productSearchLimit).Return([]models.Product{{ID: 42, Name: "Tote bag"}}, nil)
	got, err = service.Search(ctx, " tote ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
