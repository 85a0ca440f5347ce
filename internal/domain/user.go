package domain

import (
	"context"
	"time"
)

// AccountKind distinguishes personal accounts from business accounts.
// Business accounts own a store created at registration.
type AccountKind string

const (
	AccountPersonal AccountKind = "PERSONAL"
	AccountBusiness AccountKind = "BUSINESS"
)

// User represents a registered account.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	AccountKind    AccountKind
	Name           string
	Bio            string
	ProfilePhoto   string
	FollowersCount int
	FollowingCount int
	PostCount      int
	CreatedAt      time.Time
}

// PublicProfile is the subset of a user shown next to content written by them.
type PublicProfile struct {
	ID           int64
	Username     string
	Name         string
	ProfilePhoto string
}

// ProfileUpdate carries the fields of a profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	Name         *string
	Username     *string
	Bio          *string
	ProfilePhoto *string
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and, when store is non-nil, the store owned by it
	// in the same transaction.
	Create(ctx context.Context, user *User, store *Store) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetProfiles resolves the given ids in one query. Unknown ids are absent from the map.
	GetProfiles(ctx context.Context, ids []int64) (map[int64]PublicProfile, error)
	Update(ctx context.Context, id int64, update ProfileUpdate) (*User, error)
	SearchByName(ctx context.Context, query string) ([]PublicProfile, error)
}
