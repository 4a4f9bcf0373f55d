package models

import "gorm.io/gorm"

// Trading platforms for Account.Platform.
const (
	PlatformMT4 = "MT4"
	PlatformMT5 = "MT5"
)

// Account is a trading account under evaluation. It is created as a
// skeleton (only UserID/OrderID/PlanID set) by the provisioning workflow;
// the connection fields are filled later when the member links a real
// MT4/MT5 account through the external connection flow.
type Account struct {
	gorm.Model
	UserID           uint    `json:"user_id" gorm:"index"`
	OrderID          uint    `json:"order_id"`
	PlanID           uint    `json:"plan_id"`
	Platform         *string `json:"platform"`
	Broker           *string `json:"broker"`
	Server           *string `json:"server"`
	Leverage         *int    `json:"leverage"`
	Login            *string `json:"login"`
	MetaapiAccountID *string `json:"metaapi_account_id"`
	IsActive         bool    `json:"is_active"`
}
