package domain

import "context"

// FollowRepository manages the follower/followee relation. Both write
// operations keep the denormalized counters of both users equal to the
// size of the underlying sets.
type FollowRepository interface {
	// Follow records the pair. It reports false when the pair already existed.
	Follow(ctx context.Context, followerID, followeeID int64) (bool, error)
	// Unfollow removes the pair. It reports false when there was nothing to remove.
	Unfollow(ctx context.Context, followerID, followeeID int64) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	ListFollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}
