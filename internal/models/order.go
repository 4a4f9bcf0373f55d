package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses.
const (
	OrderStatusPaid     = "paid"
	OrderStatusPending  = "pending"
	OrderStatusFailed   = "failed"
	OrderStatusRefunded = "refunded"
)

// OrderCurrency is the single currency this service sells in.
const OrderCurrency = "USD"

// Order is one purchase transaction. AccountID stays nil until the
// provisioning workflow back-links the order to the account it created;
// a paid order with a nil AccountID is a consistency gap for the external
// reconciliation process to repair.
type Order struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"index"`
	PlanID     uint      `json:"plan_id"`
	AccountID  *uint     `json:"account_id"`
	Reference  string    `json:"reference"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	Success    bool      `json:"success"`
	Status     string    `json:"status"`
	ExpiryDate time.Time `json:"expiry_date"`
}
