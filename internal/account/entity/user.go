package entity

import "time"

// User mirrors the users table. Password holds the bcrypt hash, never the
// plaintext. AuthProviderID links the row to the identity provider account.
type User struct {
	ID             string
	FirstName      string
	LastName       string
	Username       string
	Email          string
	Phone          string
	BirthDate      *time.Time
	NationalID     string
	IDExpiration   *time.Time
	Password       string
	IsVerified     bool
	AuthProviderID string
	Status         UserStatus
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time
}

// FullName joins first and last name for display and provider sync.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}

type PatchUser struct {
	ID           string
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	NationalID   *string
	IDExpiration *time.Time
	Status       *UserStatus
	IsVerified   *bool
}

type UserListFilter struct {
	IsFilterBySearch bool
	Search           string
	IncludeDeleted   bool
	OrderBy          string
	OrderDirection   string // `asc` or `desc`
	Size             int32
	Offset           int32
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
