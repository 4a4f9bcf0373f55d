package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount types for Coupon.DiscountType.
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// Coupon is a discount descriptor. Code is stored normalized (trimmed,
// lower-cased). A nil ValidFrom or ValidUntil leaves that side of the
// validity window open. StripeCouponID links the coupon to its
// payment-provider counterpart.
type Coupon struct {
	gorm.Model
	Code           string     `json:"code" gorm:"uniqueIndex"`
	Description    string     `json:"description"`
	DiscountType   string     `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	MaxUsesPerUser *int       `json:"max_uses_per_user,omitempty"`
	MinOrderAmount *float64   `json:"min_order_amount,omitempty"`
	ValidFrom      *time.Time `json:"valid_from,omitempty"`
	ValidUntil     *time.Time `json:"valid_until,omitempty"`
	IsActive       bool       `json:"is_active"`
	StripeCouponID *string    `json:"stripe_coupon_id,omitempty"`
}
