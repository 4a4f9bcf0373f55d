package checkout

import (
	"context"
	"fmt"
	"time"

	"veilon-dashboard-go/internal/catalog"
	"veilon-dashboard-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// orderValidity is how long a provisioned order stays redeemable.
const orderValidity = 30 * 24 * time.Hour

// Provisioned is the result of a successful provisioning run: a paid order
// and the skeleton account it created, mutually cross-linked.
type Provisioned struct {
	OrderID   uint   `json:"order_id"`
	AccountID uint   `json:"account_id"`
	Reference string `json:"reference"`
}

// Workflow drives account provisioning: resolve the plan, create the
// order, create the skeleton account, and back-link the order to it. The
// three writes run inside a single transaction so no partially provisioned
// order/account pair can ever persist.
type Workflow struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewWorkflow creates a new Workflow.
func NewWorkflow(db *gorm.DB, cat *catalog.Catalog, logger *zap.Logger) *Workflow {
	return &Workflow{db: db, catalog: cat, logger: logger}
}

// ProvisionAccount creates a paid order for the active plan matching
// accountSize and a linked skeleton account for the user. It returns
// catalog.ErrPlanNotFound, with no writes performed, when no plan is
// active for that size. On any storage failure the transaction rolls back
// and the first error surfaces unmodified to the caller.
func (w *Workflow) ProvisionAccount(ctx context.Context, userID uint, accountSize int64) (*Provisioned, error) {
	plan, err := w.catalog.GetPlanByAccountSize(ctx, accountSize)
	if err != nil {
		return nil, err
	}

	l := w.logger.With(
		zap.Uint("user_id", userID),
		zap.Uint("plan_id", plan.ID),
		zap.Int64("account_size", accountSize),
	)

	var order models.Order
	var account models.Account

	err = w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Step 1: the order, treated as immediately paid. Payment-provider
		// confirmation is handled outside this workflow.
		order = models.Order{
			UserID:     userID,
			PlanID:     plan.ID,
			Reference:  uuid.NewString(),
			Price:      plan.Price,
			Currency:   models.OrderCurrency,
			Success:    true,
			Status:     models.OrderStatusPaid,
			ExpiryDate: time.Now().UTC().Add(orderValidity),
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		// Step 2: the skeleton account. Platform and connection fields stay
		// nil until the member links a live MT4/MT5 account.
		account = models.Account{
			UserID:   userID,
			OrderID:  order.ID,
			PlanID:   plan.ID,
			IsActive: true,
		}
		if err := tx.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		// Step 3: close the back-reference so order and account point at
		// each other.
		if err := tx.Model(&order).Update("account_id", account.ID).Error; err != nil {
			return fmt.Errorf("failed to link order to account: %w", err)
		}
		return nil
	})
	if err != nil {
		l.Error("Provisioning failed, transaction rolled back", zap.Error(err))
		return nil, err
	}

	l.Info("Provisioned evaluation account",
		zap.Uint("order_id", order.ID),
		zap.Uint("account_id", account.ID),
		zap.String("reference", order.Reference),
	)

	return &Provisioned{
		OrderID:   order.ID,
		AccountID: account.ID,
		Reference: order.Reference,
	}, nil
}
