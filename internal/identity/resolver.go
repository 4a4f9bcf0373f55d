package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"veilon-dashboard-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrEmptyEmail is returned when the presented identity has no usable email.
var ErrEmptyEmail = errors.New("identity email is empty")

// Claims are the fields this service consumes from an authenticated
// identity. They are passed explicitly into every operation that needs
// them; there is no ambient session state.
type Claims struct {
	Email      string
	GivenName  string
	FamilyName string
}

// Resolver maps authenticated identities to persistent user records.
type Resolver struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewResolver creates a new Resolver.
func NewResolver(db *gorm.DB, logger *zap.Logger) *Resolver {
	return &Resolver{db: db, logger: logger}
}

// NormalizeEmail trims and lower-cases an email address. All lookups and
// stored rows use the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ResolveOrCreateUser returns the user owning the claims' email, creating a
// minimal row on first sign-in. An existing user is returned unchanged even
// when the fresh claims carry different name fields (first write wins).
// The call is idempotent per normalized email and performs at most one
// insert: if the insert loses a race on the unique email index, the lookup
// is retried once and the winner's row is returned.
func (r *Resolver) ResolveOrCreateUser(ctx context.Context, claims Claims) (*models.User, error) {
	email := NormalizeEmail(claims.Email)
	if email == "" {
		return nil, ErrEmptyEmail
	}

	user, err := r.findByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	created := models.User{
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		Email:     email,
	}
	if createErr := r.db.WithContext(ctx).Create(&created).Error; createErr != nil {
		// A concurrent first sign-in may have won the unique email index.
		if user, err := r.findByEmail(ctx, email); err == nil {
			return user, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", createErr)
	}

	r.logger.Info("Created user from identity claims",
		zap.Uint("user_id", created.ID),
		zap.String("email", email),
	)
	return &created, nil
}

func (r *Resolver) findByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
