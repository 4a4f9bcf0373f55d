package identity

import (
	"context"
	"testing"

	"veilon-dashboard-go/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTest creates an isolated in-memory database and a Resolver.
func setupTest(t *testing.T) (*gorm.DB, *Resolver) {
	// Use a new, non-shared in-memory database for each test to ensure isolation.
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(&models.User{})
	assert.NoError(t, err)

	return db, NewResolver(db, zap.NewNop())
}

func TestResolveOrCreateUser_CreatesOnFirstSignIn(t *testing.T) {
	db, resolver := setupTest(t)

	user, err := resolver.ResolveOrCreateUser(context.Background(), Claims{
		Email:      "jane@example.com",
		GivenName:  "Jane",
		FamilyName: "Doe",
	})

	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Nil(t, user.PasswordHash)
	assert.Nil(t, user.Country)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveOrCreateUser_IsIdempotentPerEmail(t *testing.T) {
	db, resolver := setupTest(t)

	first, err := resolver.ResolveOrCreateUser(context.Background(), Claims{Email: "jane@example.com"})
	assert.NoError(t, err)

	second, err := resolver.ResolveOrCreateUser(context.Background(), Claims{Email: "jane@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveOrCreateUser_NormalizesEmail(t *testing.T) {
	db, resolver := setupTest(t)

	first, err := resolver.ResolveOrCreateUser(context.Background(), Claims{Email: "Jane@Example.com "})
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", first.Email)

	second, err := resolver.ResolveOrCreateUser(context.Background(), Claims{Email: "jane@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestResolveOrCreateUser_ExistingUserKeepsOriginalNames(t *testing.T) {
	_, resolver := setupTest(t)

	first, err := resolver.ResolveOrCreateUser(context.Background(), Claims{
		Email:     "jane@example.com",
		GivenName: "Jane",
	})
	assert.NoError(t, err)

	// Fresh claims with different names must not rewrite the stored row.
	second, err := resolver.ResolveOrCreateUser(context.Background(), Claims{
		Email:     "jane@example.com",
		GivenName: "Janet",
	})
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Jane", second.FirstName)
}

func TestResolveOrCreateUser_EmptyEmail(t *testing.T) {
	_, resolver := setupTest(t)

	_, err := resolver.ResolveOrCreateUser(context.Background(), Claims{Email: "   "})
	assert.ErrorIs(t, err, ErrEmptyEmail)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail(" Jane@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}
