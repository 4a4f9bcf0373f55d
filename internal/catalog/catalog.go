package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"veilon-dashboard-go/internal/models"

	"gorm.io/gorm"
)

// Sentinel errors for expected not-found conditions. Callers branch on
// these with errors.Is instead of treating them as faults.
var (
	// ErrPlanNotFound is returned when no active plan exists for the
	// requested account size.
	ErrPlanNotFound = errors.New("no active plan for account size")

	// ErrCouponNotFound is returned for any coupon that cannot be applied:
	// unknown code, inactive, expired or not yet valid. The cases are
	// deliberately indistinguishable to the caller.
	ErrCouponNotFound = errors.New("no active coupon for code")
)

// Catalog provides read-only lookups against the plan and coupon tables.
// Both tables are managed externally; this service never writes them.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog creates a new Catalog.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// GetPlanByAccountSize returns the single active plan whose account size
// matches exactly, or ErrPlanNotFound.
func (c *Catalog) GetPlanByAccountSize(ctx context.Context, accountSize int64) (*models.Plan, error) {
	var plan models.Plan
	err := c.db.WithContext(ctx).
		Where("account_size = ? AND is_active = ?", accountSize, true).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up plan for account size %d: %w", accountSize, err)
	}
	return &plan, nil
}

// GetActiveCoupon returns the coupon for the given code when it is active
// and the current time falls inside its validity window. A nil bound
// leaves that side of the window open. Every other state yields
// ErrCouponNotFound.
func (c *Catalog) GetActiveCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrCouponNotFound
	}

	now := time.Now().UTC()
	var coupon models.Coupon
	err := c.db.WithContext(ctx).
		Where(
			"code = ? AND is_active = ? AND (valid_from IS NULL OR valid_from <= ?) AND (valid_until IS NULL OR valid_until >= ?)",
			normalized, true, now, now,
		).
		First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}
	return &coupon, nil
}
