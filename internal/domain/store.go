package domain

import (
	"context"
	"time"
)

// Store is the shop owned by a business account.
type Store struct {
	ID        int64
	OwnerID   int64
	Name      string
	Address   string
	District  string
	City      string
	Phone     string
	CreatedAt time.Time
}

// StoreUpdate carries the fields of a store edit. Nil fields are left untouched.
type StoreUpdate struct {
	Name     *string
	Address  *string
	District *string
	City     *string
	Phone    *string
}

type Product struct {
	ID        int64
	StoreID   int64
	Name      string
	Category  string
	Brand     string
	Unit      string
	Price     float64
	Image     string
	CreatedAt time.Time
}

type ProductUpdate struct {
	Name     *string
	Category *string
	Brand    *string
	Unit     *string
	Price    *float64
	Image    *string
}

// Promotion groups products of a store under a time-boxed offer. ProductIDs
// are not kept in sync with product deletion.
type Promotion struct {
	ID         int64
	StoreID    int64
	ProductIDs []int64
	Title      string
	StartsAt   time.Time
	EndsAt     time.Time
	CreatedAt  time.Time
}

type PromotionUpdate struct {
	ProductIDs *[]int64
	Title      *string
	StartsAt   *time.Time
	EndsAt     *time.Time
}

type StoreRepository interface {
	GetByID(ctx context.Context, id int64) (*Store, error)
	GetByOwner(ctx context.Context, ownerID int64) (*Store, error)
	Update(ctx context.Context, id int64, update StoreUpdate) (*Store, error)
	SearchByName(ctx context.Context, query string) ([]Store, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	// ListByStore returns the newest products first. A limit <= 0 means no limit.
	ListByStore(ctx context.Context, storeID int64, limit int) ([]Product, error)
	Update(ctx context.Context, id int64, update ProductUpdate) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type PromotionRepository interface {
	Create(ctx context.Context, promotion *Promotion) error
	// ListByStore returns promotions ordered by start date, latest first.
	ListByStore(ctx context.Context, storeID int64) ([]Promotion, error)
	Update(ctx context.Context, id int64, update PromotionUpdate) (*Promotion, error)
	Delete(ctx context.Context, id int64) error
}
