package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateCouponRequest struct {
	Code        string `json:"code" form:"code" binding:"required,max=64"`
	Description string `json:"description" form:"description"`
}

// SaveFreeProductRequest mirrors the coupon edit form; an empty value clears the link.
type SaveFreeProductRequest struct {
	FreeProduct string `json:"freeproduct" form:"freeproduct"`
}

type FreeProductResponse struct {
	CouponID    int        `json:"coupon_id"`
	CouponCode  string     `json:"coupon_code"`
	ProductID   *ProductID `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" form:"product_id" binding:"required,gt=0"`
	Quantity  int `json:"quantity" form:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" form:"quantity" binding:"required,gt=0"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" form:"code" binding:"required"`
}

// ReconcileResult summarises one free-gift reconciliation pass.
type ReconcileResult struct {
	Added   []ProductID `json:"added"`
	Removed []ProductID `json:"removed"`
	Skipped []ProductID `json:"skipped"`
	Clamped []ProductID `json:"clamped"`
}

func (r *ReconcileResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Clamped) > 0
}

type CartResponse struct {
	Cart      *Cart            `json:"cart"`
	Reconcile *ReconcileResult `json:"reconcile,omitempty"`
}
