package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/msomdec/mercado-social/internal/domain"
)

func TestFollowService_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	b := env.register(t, "bob")

	changed, err := env.follows.Follow(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if !changed {
		t.Fatal("expected first follow to change state")
	}

	following, err := env.follows.IsFollowing(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if !following {
		t.Fatal("expected alice to follow bob")
	}
	assertFollowCounts(t, env, a.ID, 0, 1)
	assertFollowCounts(t, env, b.ID, 1, 0)

	changed, err = env.follows.Unfollow(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("Unfollow: %v", err)
	}
	if !changed {
		t.Fatal("expected unfollow to change state")
	}

	following, err = env.follows.IsFollowing(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("IsFollowing: %v", err)
	}
	if following {
		t.Fatal("expected alice to no longer follow bob")
	}
	assertFollowCounts(t, env, a.ID, 0, 0)
	assertFollowCounts(t, env, b.ID, 0, 0)
}

func TestFollowService_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	b := env.register(t, "bob")

	for i := range 3 {
		changed, err := env.follows.Follow(ctx, a.ID, b.ID)
		if err != nil {
			t.Fatalf("Follow #%d: %v", i, err)
		}
		if changed != (i == 0) {
			t.Fatalf("Follow #%d: expected changed=%v, got %v", i, i == 0, changed)
		}
	}
	assertFollowCounts(t, env, b.ID, 1, 0)

	for i := range 3 {
		changed, err := env.follows.Unfollow(ctx, a.ID, b.ID)
		if err != nil {
			t.Fatalf("Unfollow #%d: %v", i, err)
		}
		if changed != (i == 0) {
			t.Fatalf("Unfollow #%d: expected changed=%v, got %v", i, i == 0, changed)
		}
	}
	assertFollowCounts(t, env, a.ID, 0, 0)
	assertFollowCounts(t, env, b.ID, 0, 0)
}

func TestFollowService_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")

	if _, err := env.follows.Follow(ctx, 0, a.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("missing actor: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := env.follows.Follow(ctx, a.ID, a.ID); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("self follow: expected ErrInvalidInput, got %v", err)
	}
	if _, err := env.follows.Follow(ctx, a.ID, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown target: expected ErrNotFound, got %v", err)
	}
	if _, err := env.follows.Unfollow(ctx, 9999, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown actor: expected ErrNotFound, got %v", err)
	}
	if _, err := env.follows.Unfollow(ctx, 0, a.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("unfollow missing actor: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := env.follows.IsFollowing(ctx, 0, a.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("status missing actor: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := env.follows.IsFollowing(ctx, 9999, a.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("status unknown actor: expected ErrNotFound, got %v", err)
	}
}

func TestFollowService_Lists(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.register(t, "alice")
	b := env.register(t, "bob")
	c := env.register(t, "carol")

	for _, follower := range []int64{b.ID, c.ID} {
		if _, err := env.follows.Follow(ctx, follower, a.ID); err != nil {
			t.Fatalf("Follow: %v", err)
		}
	}

	followers, err := env.follows.Followers(ctx, a.ID)
	if err != nil {
		t.Fatalf("Followers: %v", err)
	}
	if len(followers) != 2 {
		t.Fatalf("expected 2 followers, got %d", len(followers))
	}
	seen := map[int64]bool{}
	for _, p := range followers {
		seen[p.ID] = true
	}
	if !seen[b.ID] || !seen[c.ID] {
		t.Fatalf("unexpected followers: %+v", followers)
	}

	following, err := env.follows.Following(ctx, b.ID)
	if err != nil {
		t.Fatalf("Following: %v", err)
	}
	if len(following) != 1 || following[0].Username != "alice" {
		t.Fatalf("unexpected following: %+v", following)
	}

	if _, err := env.follows.Followers(ctx, 9999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func assertFollowCounts(t *testing.T, env *testEnv, userID int64, followers, following int) {
	t.Helper()
	user, err := env.db.Users().GetByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.FollowersCount != followers || user.FollowingCount != following {
		t.Fatalf("user %d: expected followers=%d following=%d, got followers=%d following=%d",
			userID, followers, following, user.FollowersCount, user.FollowingCount)
	}
}
