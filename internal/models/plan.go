package models

import "gorm.io/gorm"

// Plan is a catalog entry for one evaluation tier. AccountSize is the
// simulated capital amount the member trades against. The catalog is
// read-only from this service; rows are seeded from config or managed
// externally. At most one active plan exists per account size.
type Plan struct {
	gorm.Model
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	AccountSize int64   `json:"account_size" gorm:"index"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active"`
	StripeLink  string  `json:"stripe_link,omitempty"`
}
