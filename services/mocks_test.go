package services

import (
	"context"
	"time"

	"free-gift-coupon/models"

	"github.com/stretchr/testify/mock"
)

type MockCouponStore struct {
	mock.Mock
}

func (m *MockCouponStore) List(ctx context.Context) ([]models.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Coupon), args.Error(1)
}

func (m *MockCouponStore) GetByID(ctx context.Context, id int) (*models.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponStore) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Coupon), args.Error(1)
}

func (m *MockCouponStore) Create(ctx context.Context, coupon *models.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponStore) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponStore) GetLinkedProduct(ctx context.Context, couponID int) (models.ProductID, bool, error) {
	args := m.Called(ctx, couponID)
	return args.Get(0).(models.ProductID), args.Bool(1), args.Error(2)
}

func (m *MockCouponStore) SaveLink(ctx context.Context, couponID int, productID *models.ProductID) error {
	args := m.Called(ctx, couponID, productID)
	return args.Error(0)
}

func (m *MockCouponStore) ListLinks(ctx context.Context) ([]models.CouponFreeProductLink, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CouponFreeProductLink), args.Error(1)
}

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) GetByID(ctx context.Context, id models.ProductID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductStore) GetByIDs(ctx context.Context, ids []models.ProductID) (map[models.ProductID]models.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ProductID]models.Product), args.Error(1)
}

func (m *MockProductStore) Exists(ctx context.Context, id models.ProductID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductStore) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) ListByCouponCode(ctx context.Context, code string, start, end time.Time) ([]models.CouponOrder, error) {
	args := m.Called(ctx, code, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CouponOrder), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// memoryLinkCache counts invalidations so tests can assert on them.
type memoryLinkCache struct {
	links         []models.CouponFreeProductLink
	cached        bool
	invalidations int
}

func (c *memoryLinkCache) Get(context.Context) ([]models.CouponFreeProductLink, bool) {
	return c.links, c.cached
}

func (c *memoryLinkCache) Set(_ context.Context, links []models.CouponFreeProductLink) {
	c.links = links
	c.cached = true
}

func (c *memoryLinkCache) Invalidate(context.Context) {
	c.links = nil
	c.cached = false
	c.invalidations++
}

// memoryCartStore keeps carts in a map and counts saves.
type memoryCartStore struct {
	carts   map[int]*models.Cart
	saves   int
	loadErr error
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: map[int]*models.Cart{}}
}

func cloneCart(cart *models.Cart) *models.Cart {
	clone := *cart
	clone.Items = append([]models.CartLine{}, cart.Items...)
	clone.AppliedCoupons = append([]string{}, cart.AppliedCoupons...)
	return &clone
}

func (s *memoryCartStore) Load(_ context.Context, userID int) (*models.Cart, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if cart, ok := s.carts[userID]; ok {
		return cloneCart(cart), nil
	}
	return models.NewCart(userID), nil
}

func (s *memoryCartStore) Update(ctx context.Context, userID int, fn func(*models.Cart) (bool, error)) (*models.Cart, error) {
	cart, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	changed, err := fn(cart)
	if err != nil {
		return nil, err
	}
	if changed {
		s.saves++
		s.carts[userID] = cloneCart(cart)
	}
	return cart, nil
}

type staticLinks struct {
	links []models.CouponFreeProductLink
	err   error
}

func (s *staticLinks) ListLinks(context.Context) ([]models.CouponFreeProductLink, error) {
	return s.links, s.err
}
