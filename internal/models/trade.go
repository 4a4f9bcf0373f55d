package models

import (
	"time"

	"gorm.io/gorm"
)

// Trade directions.
const (
	TradeDirectionBuy  = "BUY"
	TradeDirectionSell = "SELL"
)

// Trade is one execution record on an evaluation account. Rows are written
// only by the external trade-ingestion sync; this service reads them,
// ordered by OpenTime ascending.
type Trade struct {
	gorm.Model
	AccountID  uint       `json:"account_id" gorm:"index"`
	Symbol     string     `json:"symbol"`
	Direction  string     `json:"direction"`
	Volume     float64    `json:"volume"`
	OpenPrice  float64    `json:"open_price"`
	ClosePrice float64    `json:"close_price"`
	Profit     float64    `json:"profit"`
	OpenTime   time.Time  `json:"open_time" gorm:"index"`
	CloseTime  *time.Time `json:"close_time,omitempty"`
}
