package catalog

import (
	"context"
	"testing"
	"time"

	"veilon-dashboard-go/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest creates an isolated in-memory database and a Catalog.
func setupTest(t *testing.T) (*gorm.DB, *Catalog) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Plan{}, &models.Coupon{})
	assert.NoError(t, err)

	return db, NewCatalog(db)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestGetPlanByAccountSize(t *testing.T) {
	db, cat := setupTest(t)
	db.Create(&models.Plan{Name: "$50,000 Assessment", Code: "assessment-50k", AccountSize: 50000, Price: 500.00, IsActive: true})
	db.Create(&models.Plan{Name: "$25,000 Assessment", Code: "assessment-25k", AccountSize: 25000, Price: 259.00, IsActive: false})

	t.Run("ActivePlan", func(t *testing.T) {
		plan, err := cat.GetPlanByAccountSize(context.Background(), 50000)
		assert.NoError(t, err)
		assert.Equal(t, "assessment-50k", plan.Code)
		assert.Equal(t, 500.00, plan.Price)
	})

	t.Run("NoPlanForSize", func(t *testing.T) {
		_, err := cat.GetPlanByAccountSize(context.Background(), 10000)
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})

	t.Run("InactivePlanIsNotFound", func(t *testing.T) {
		_, err := cat.GetPlanByAccountSize(context.Background(), 25000)
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestGetActiveCoupon(t *testing.T) {
	db, cat := setupTest(t)
	now := time.Now().UTC()

	db.Create(&models.Coupon{Code: "save20", DiscountType: models.DiscountTypePercentage, DiscountValue: 20, IsActive: true})
	db.Create(&models.Coupon{
		Code:          "windowed",
		DiscountType:  models.DiscountTypeFixedAmount,
		DiscountValue: 50,
		IsActive:      true,
		ValidFrom:     timePtr(now.Add(-time.Hour)),
		ValidUntil:    timePtr(now.Add(time.Hour)),
	})
	db.Create(&models.Coupon{Code: "expired", IsActive: true, ValidUntil: timePtr(now.Add(-time.Hour))})
	db.Create(&models.Coupon{Code: "notyet", IsActive: true, ValidFrom: timePtr(now.Add(time.Hour))})
	db.Create(&models.Coupon{Code: "disabled", IsActive: false})

	t.Run("ActiveUnbounded", func(t *testing.T) {
		coupon, err := cat.GetActiveCoupon(context.Background(), "save20")
		assert.NoError(t, err)
		assert.Equal(t, models.DiscountTypePercentage, coupon.DiscountType)
		assert.Equal(t, 20.0, coupon.DiscountValue)
	})

	t.Run("CodeIsNormalized", func(t *testing.T) {
		coupon, err := cat.GetActiveCoupon(context.Background(), "  SAVE20 ")
		assert.NoError(t, err)
		assert.Equal(t, "save20", coupon.Code)
	})

	t.Run("InsideWindow", func(t *testing.T) {
		coupon, err := cat.GetActiveCoupon(context.Background(), "windowed")
		assert.NoError(t, err)
		assert.Equal(t, "windowed", coupon.Code)
	})

	t.Run("Expired", func(t *testing.T) {
		_, err := cat.GetActiveCoupon(context.Background(), "expired")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("NotYetValid", func(t *testing.T) {
		_, err := cat.GetActiveCoupon(context.Background(), "notyet")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("Inactive", func(t *testing.T) {
		_, err := cat.GetActiveCoupon(context.Background(), "disabled")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("UnknownCode", func(t *testing.T) {
		_, err := cat.GetActiveCoupon(context.Background(), "nosuchcode")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		_, err := cat.GetActiveCoupon(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})
}
