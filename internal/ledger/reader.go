package ledger

import (
	"context"
	"fmt"
	"time"

	"veilon-dashboard-go/internal/models"

	"gorm.io/gorm"
)

// Reader retrieves trade history for evaluation accounts. Trades are
// written by the external platform sync; everything here is read-only.
type Reader struct {
	db *gorm.DB
}

// NewReader creates a new Reader.
func NewReader(db *gorm.DB) *Reader {
	return &Reader{db: db}
}

// ListTrades returns the account's trades ordered by open time ascending.
// An account with no trades (or an unknown account id) yields an empty
// slice, never an error.
func (r *Reader) ListTrades(ctx context.Context, accountID uint) ([]models.Trade, error) {
	trades := make([]models.Trade, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("open_time asc").
		Find(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trades for account %d: %w", accountID, err)
	}
	return trades, nil
}

// StatsDetail holds calculated statistics for a given period.
type StatsDetail struct {
	TotalTrades      int64   `json:"total_trades"`
	ProfitableTrades int64   `json:"profitable_trades"`
	WinRate          float64 `json:"win_rate"`
	TotalProfit      float64 `json:"total_profit"`
}

// AccountStatistics aggregates an account's trades for the dashboard
// metric tiles.
type AccountStatistics struct {
	Since24h StatsDetail `json:"since_24h"`
	AllTime  StatsDetail `json:"all_time"`
}

// Statistics calculates trade statistics for the account, all-time and for
// the trailing 24 hours.
func (r *Reader) Statistics(ctx context.Context, accountID uint) (*AccountStatistics, error) {
	trades, err := r.ListTrades(ctx, accountID)
	if err != nil {
		return nil, err
	}

	since24h := time.Now().Add(-24 * time.Hour)

	stats := AccountStatistics{}
	for _, trade := range trades {
		stats.AllTime.TotalTrades++
		if trade.Profit > 0 {
			stats.AllTime.ProfitableTrades++
		}
		stats.AllTime.TotalProfit += trade.Profit

		if trade.OpenTime.After(since24h) {
			stats.Since24h.TotalTrades++
			if trade.Profit > 0 {
				stats.Since24h.ProfitableTrades++
			}
			stats.Since24h.TotalProfit += trade.Profit
		}
	}

	if stats.AllTime.TotalTrades > 0 {
		stats.AllTime.WinRate = float64(stats.AllTime.ProfitableTrades) / float64(stats.AllTime.TotalTrades)
	}
	if stats.Since24h.TotalTrades > 0 {
		stats.Since24h.WinRate = float64(stats.Since24h.ProfitableTrades) / float64(stats.Since24h.TotalTrades)
	}

	return &stats, nil
}
