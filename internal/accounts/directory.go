package accounts

import (
	"context"
	"fmt"

	"veilon-dashboard-go/internal/models"

	"gorm.io/gorm"
)

// Directory looks up the trading accounts a member owns.
type Directory struct {
	db *gorm.DB
}

// NewDirectory creates a new Directory.
func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// ListActiveAccounts returns all active accounts owned by the user, ordered
// by id ascending. A member with no accounts gets an empty slice, which the
// presentation layer renders as a disabled selector, not a fault.
func (d *Directory) ListActiveAccounts(ctx context.Context, userID uint) ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("id asc").
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	return accounts, nil
}

// GetOwnedAccount returns the account only when it exists and belongs to
// the user. Missing and foreign accounts are both gorm.ErrRecordNotFound;
// the API layer does not reveal other members' account ids.
func (d *Directory) GetOwnedAccount(ctx context.Context, accountID, userID uint) (*models.Account, error) {
	var account models.Account
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", accountID, userID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}
