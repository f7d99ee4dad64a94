package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"free-gift-coupon/models"
	"free-gift-coupon/repositories"

	"go.uber.org/zap"
)

type CouponStore interface {
	List(ctx context.Context) ([]models.Coupon, error)
	GetByID(ctx context.Context, id int) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id int) error
	GetLinkedProduct(ctx context.Context, couponID int) (models.ProductID, bool, error)
	SaveLink(ctx context.Context, couponID int, productID *models.ProductID) error
	ListLinks(ctx context.Context) ([]models.CouponFreeProductLink, error)
}

type ProductStore interface {
	GetByID(ctx context.Context, id models.ProductID) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []models.ProductID) (map[models.ProductID]models.Product, error)
	Exists(ctx context.Context, id models.ProductID) (bool, error)
	Search(ctx context.Context, term string, limit int) ([]models.Product, error)
}

type LinkCache interface {
	Get(ctx context.Context) ([]models.CouponFreeProductLink, bool)
	Set(ctx context.Context, links []models.CouponFreeProductLink)
	Invalidate(ctx context.Context)
}

type OrderStore interface {
	ListByCouponCode(ctx context.Context, code string, start, end time.Time) ([]models.CouponOrder, error)
}

const reportDateLayout = "2006-01-02"

type CouponService struct {
	coupons  CouponStore
	products ProductStore
	orders   OrderStore
	cache    LinkCache
	log      *zap.Logger
}

func NewCouponService(coupons CouponStore, products ProductStore, orders OrderStore, cache LinkCache, log *zap.Logger) *CouponService {
	return &CouponService{
		coupons:  coupons,
		products: products,
		orders:   orders,
		cache:    cache,
		log:      log,
	}
}

// ListCoupons returns all coupons with the free product column filled in.
func (s *CouponService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.coupons.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := []models.ProductID{}
	for _, c := range coupons {
		if c.FreeProductID != nil {
			ids = append(ids, *c.FreeProductID)
		}
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range coupons {
		coupons[i].FreeProductName = models.NoFreeProductLabel
		if id := coupons[i].FreeProductID; id != nil {
			if p, ok := products[*id]; ok {
				coupons[i].FreeProductName = p.FormattedName()
			}
		}
	}
	return coupons, nil
}

func (s *CouponService) CreateCoupon(ctx context.Context, req models.CreateCouponRequest) (*models.Coupon, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, ErrInvalidCouponCode
	}

	coupon := &models.Coupon{Code: code, Description: req.Description}
	if err := s.coupons.Create(ctx, coupon); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrCouponAlreadyExists
		}
		return nil, err
	}
	coupon.FreeProductName = models.NoFreeProductLabel
	return coupon, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id int) error {
	if err := s.coupons.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCouponNotFound
		}
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *CouponService) GetFreeProduct(ctx context.Context, couponID int) (*models.FreeProductResponse, error) {
	coupon, err := s.getCoupon(ctx, couponID)
	if err != nil {
		return nil, err
	}

	resp := &models.FreeProductResponse{CouponID: coupon.ID, CouponCode: coupon.Code}
	productID, ok, err := s.coupons.GetLinkedProduct(ctx, couponID)
	if err != nil {
		return nil, err
	}
	if !ok {
		resp.ProductName = models.NoFreeProductLabel
		return resp, nil
	}

	resp.ProductID = &productID
	product, err := s.products.GetByID(ctx, productID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		resp.ProductName = models.NoFreeProductLabel
	case err != nil:
		return nil, err
	default:
		resp.ProductName = product.FormattedName()
	}
	return resp, nil
}

// SaveFreeProduct persists the coupon form's freeproduct value. An empty value clears the link.
func (s *CouponService) SaveFreeProduct(ctx context.Context, couponID int, raw string) (*models.FreeProductResponse, error) {
	coupon, err := s.getCoupon(ctx, couponID)
	if err != nil {
		return nil, err
	}

	resp := &models.FreeProductResponse{CouponID: coupon.ID, CouponCode: coupon.Code}

	if strings.TrimSpace(raw) == "" {
		if err := s.coupons.SaveLink(ctx, couponID, nil); err != nil {
			return nil, err
		}
		s.cache.Invalidate(ctx)
		s.log.Info("Free product cleared", zap.Int("coupon_id", couponID))
		resp.ProductName = models.NoFreeProductLabel
		return resp, nil
	}

	productID, err := models.ParseProductID(raw)
	if err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.coupons.SaveLink(ctx, couponID, &productID); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	s.log.Info("Free product linked",
		zap.Int("coupon_id", couponID), zap.Int64("product_id", int64(productID)))

	resp.ProductID = &productID
	resp.ProductName = product.FormattedName()
	return resp, nil
}

// ListLinks is the link source for cart reconciliation.
func (s *CouponService) ListLinks(ctx context.Context) ([]models.CouponFreeProductLink, error) {
	if links, ok := s.cache.Get(ctx); ok {
		return links, nil
	}
	links, err := s.coupons.ListLinks(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, links)
	return links, nil
}

// OrderReport lists orders that used code between start and end (YYYY-MM-DD, inclusive).
// Missing bounds default to the last 30 days.
func (s *CouponService) OrderReport(ctx context.Context, code, start, end string) (*models.CouponOrderReport, error) {
	endDate := time.Now()
	if end != "" {
		parsed, err := time.Parse(reportDateLayout, end)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date %q", ErrInvalidDateRange, end)
		}
		endDate = parsed
	}
	startDate := endDate.AddDate(0, 0, -30)
	if start != "" {
		parsed, err := time.Parse(reportDateLayout, start)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date %q", ErrInvalidDateRange, start)
		}
		startDate = parsed
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("%w: start_date after end_date", ErrInvalidDateRange)
	}

	orders, err := s.orders.ListByCouponCode(ctx, code, startDate, endDate)
	if err != nil {
		return nil, err
	}

	report := &models.CouponOrderReport{
		CouponCode: code,
		StartDate:  startDate.Format(reportDateLayout),
		EndDate:    endDate.Format(reportDateLayout),
		Orders:     orders,
		OrderCount: len(orders),
	}
	for _, o := range orders {
		report.FullDiscount += o.TotalDiscount
	}
	return report, nil
}

func (s *CouponService) getCoupon(ctx context.Context, id int) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	return coupon, nil
}
