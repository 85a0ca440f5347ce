package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/validation"
)

const (
	profileProductLimit = 6
	profilePostLimit    = 10
)

// Profile is everything shown on a user's page. Store is nil for personal
// accounts.
type Profile struct {
	User     *domain.User
	Store    *domain.Store
	Products []domain.Product
	Posts    []domain.Post
}

// UpdateProfileInput carries a profile edit. Nil fields are left untouched.
type UpdateProfileInput struct {
	UserID   int64   `json:"userId" validate:"required"`
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
}

// ProfileService reads and edits user profiles.
type ProfileService struct {
	users    domain.UserRepository
	stores   domain.StoreRepository
	products domain.ProductRepository
	posts    domain.PostRepository
	media    *MediaService
	validate *validation.Validator
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	users domain.UserRepository,
	stores domain.StoreRepository,
	products domain.ProductRepository,
	posts domain.PostRepository,
	media *MediaService,
	validate *validation.Validator,
) *ProfileService {
	return &ProfileService{
		users:    users,
		stores:   stores,
		products: products,
		posts:    posts,
		media:    media,
		validate: validate,
	}
}

// Get assembles the profile page of a user: the store with its newest
// products for business accounts, and the latest posts.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}

	profile := &Profile{User: user, Products: []domain.Product{}}

	store, err := s.stores.GetByOwner(ctx, userID)
	switch {
	case err == nil:
		profile.Store = store
		profile.Products, err = s.products.ListByStore(ctx, store.ID, profileProductLimit)
		if err != nil {
			return nil, fmt.Errorf("list store products: %w", err)
		}
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("get store: %w", err)
	}

	profile.Posts, err = s.posts.ListByAuthor(ctx, userID, profilePostLimit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return profile, nil
}

// GetUser returns a single user.
func (s *ProfileService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	return user, nil
}

// Update applies a profile edit, replacing the photo when one is uploaded.
func (s *ProfileService) Update(ctx context.Context, in UpdateProfileInput, photo *Upload) (*domain.User, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, fmt.Errorf("user %d: %w", in.UserID, err)
	}

	update := domain.ProfileUpdate{Name: in.Name, Username: in.Username, Bio: in.Bio}
	if photo != nil {
		path, err := s.media.Save(ctx, domain.MediaProfile, photo)
		if err != nil {
			return nil, err
		}
		update.ProfilePhoto = &path
	}

	user, err := s.users.Update(ctx, in.UserID, update)
	if err != nil {
		if update.ProfilePhoto != nil {
			s.media.Discard(ctx, *update.ProfilePhoto)
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}
