package accounts

import (
	"context"
	"testing"

	"veilon-dashboard-go/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest creates an isolated in-memory database and a Directory.
func setupTest(t *testing.T) (*gorm.DB, *Directory) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.Account{})
	assert.NoError(t, err)

	return db, NewDirectory(db)
}

func TestListActiveAccounts(t *testing.T) {
	db, directory := setupTest(t)
	db.Create(&models.Account{UserID: 1, OrderID: 10, PlanID: 1, IsActive: true})
	db.Create(&models.Account{UserID: 1, OrderID: 11, PlanID: 2, IsActive: false})
	db.Create(&models.Account{UserID: 2, OrderID: 12, PlanID: 1, IsActive: true})
	db.Create(&models.Account{UserID: 1, OrderID: 13, PlanID: 3, IsActive: true})

	list, err := directory.ListActiveAccounts(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	// Only the caller's active accounts, id ascending.
	assert.Equal(t, uint(10), list[0].OrderID)
	assert.Equal(t, uint(13), list[1].OrderID)
	for _, account := range list {
		assert.Equal(t, uint(1), account.UserID)
		assert.True(t, account.IsActive)
	}
}

func TestListActiveAccounts_NoAccountsIsEmptyNotError(t *testing.T) {
	_, directory := setupTest(t)

	list, err := directory.ListActiveAccounts(context.Background(), 42)
	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetOwnedAccount(t *testing.T) {
	db, directory := setupTest(t)
	account := models.Account{UserID: 1, OrderID: 10, PlanID: 1, IsActive: true}
	db.Create(&account)

	t.Run("Owner", func(t *testing.T) {
		got, err := directory.GetOwnedAccount(context.Background(), account.ID, 1)
		assert.NoError(t, err)
		assert.Equal(t, account.ID, got.ID)
	})

	t.Run("ForeignAccountLooksMissing", func(t *testing.T) {
		_, err := directory.GetOwnedAccount(context.Background(), account.ID, 2)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		_, err := directory.GetOwnedAccount(context.Background(), 999, 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
