package service

import (
	"context"
	"fmt"

	"github.com/msomdec/mercado-social/internal/domain"
)

// FollowService manages the follow graph between users.
type FollowService struct {
	users   domain.UserRepository
	follows domain.FollowRepository
}

// NewFollowService creates a new FollowService.
func NewFollowService(users domain.UserRepository, follows domain.FollowRepository) *FollowService {
	return &FollowService{users: users, follows: follows}
}

// Follow makes actorID follow targetID. An actorID of 0 means the caller could
// not be identified. Following an already followed user changes nothing and
// reports changed == false.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID int64) (changed bool, err error) {
	if actorID == 0 {
		return false, domain.ErrUnauthenticated
	}
	if actorID == targetID {
		return false, fmt.Errorf("%w: cannot follow yourself", domain.ErrInvalidInput)
	}
	if err := s.requireUsers(ctx, actorID, targetID); err != nil {
		return false, err
	}

	changed, err = s.follows.Follow(ctx, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("follow: %w", err)
	}
	return changed, nil
}

// Unfollow removes the follow of actorID on targetID, if any.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID int64) (changed bool, err error) {
	if actorID == 0 {
		return false, domain.ErrUnauthenticated
	}
	if err := s.requireUsers(ctx, actorID, targetID); err != nil {
		return false, err
	}

	changed, err = s.follows.Unfollow(ctx, actorID, targetID)
	if err != nil {
		return false, fmt.Errorf("unfollow: %w", err)
	}
	return changed, nil
}

// IsFollowing reports whether actorID follows targetID.
func (s *FollowService) IsFollowing(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID == 0 {
		return false, domain.ErrUnauthenticated
	}
	if err := s.requireUsers(ctx, actorID); err != nil {
		return false, err
	}
	return s.follows.IsFollowing(ctx, actorID, targetID)
}

// Followers returns the profiles of the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID int64) ([]domain.PublicProfile, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	ids, err := s.follows.ListFollowerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return s.profilesInOrder(ctx, ids)
}

// Following returns the profiles of the users followed by userID.
func (s *FollowService) Following(ctx context.Context, userID int64) ([]domain.PublicProfile, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %d: %w", userID, err)
	}
	ids, err := s.follows.ListFollowingIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return s.profilesInOrder(ctx, ids)
}

func (s *FollowService) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return fmt.Errorf("user %d: %w", id, err)
		}
	}
	return nil
}

func (s *FollowService) profilesInOrder(ctx context.Context, ids []int64) ([]domain.PublicProfile, error) {
	byID, err := s.users.GetProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	profiles := make([]domain.PublicProfile, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}
