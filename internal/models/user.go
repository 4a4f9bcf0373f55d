package models

import "gorm.io/gorm"

// User is a member identity record. Email is stored normalized (trimmed,
// lower-cased) and is the only field identity resolution keys on. The
// password fields stay nil for identity-provider-only sign-ups.
type User struct {
	gorm.Model
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email" gorm:"uniqueIndex"`
	Country      *string `json:"country,omitempty"`
	PasswordHash *string `json:"-"`
	PasswordHint *string `json:"-"`
	Marketing    *bool   `json:"marketing,omitempty"`
}
