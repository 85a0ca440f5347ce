package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/cases"

	"github.com/msomdec/mercado-social/internal/domain"
)

// SearchResult holds the users and stores matching a query.
type SearchResult struct {
	Users  []domain.PublicProfile
	Stores []domain.Store
}

// SearchService finds users and stores by name.
type SearchService struct {
	users  domain.UserRepository
	stores domain.StoreRepository
	group  singleflight.Group
}

// NewSearchService creates a new SearchService.
func NewSearchService(users domain.UserRepository, stores domain.StoreRepository) *SearchService {
	return &SearchService{users: users, stores: stores}
}

// Search matches query as a case-insensitive substring of user names,
// usernames and store names. Concurrent searches for the same folded query
// share one lookup.
func (s *SearchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &SearchResult{Users: []domain.PublicProfile{}, Stores: []domain.Store{}}, nil
	}

	// The shared lookup outlives any single caller; each caller still stops
	// waiting when its own context ends.
	key := cases.Fold().String(query)
	ch := s.group.DoChan(key, func() (any, error) {
		return s.search(context.WithoutCancel(ctx), query)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*SearchResult), nil
	}
}

func (s *SearchService) search(ctx context.Context, query string) (*SearchResult, error) {
	users, err := s.users.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	stores, err := s.stores.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search stores: %w", err)
	}

	result := &SearchResult{Users: users, Stores: stores}
	if result.Users == nil {
		result.Users = []domain.PublicProfile{}
	}
	if result.Stores == nil {
		result.Stores = []domain.Store{}
	}
	return result, nil
}
