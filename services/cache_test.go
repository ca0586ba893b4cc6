package services

import (
	"context"
	"testing"

	"wordle-arena/scoring"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*LeaderboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewLeaderboardCache(rdb), mr
}

func TestLeaderboardCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	page := &scoring.Page{
		Items: []scoring.Entry{
			{PlayerID: "u1", Username: "alice", Value: 42},
			{PlayerID: "u2", Username: "bob", Value: 17},
		},
		Page:         1,
		TotalPages:   1,
		TotalPlayers: 2,
	}

	if got := cache.Get(ctx, scoring.ThisMonth, scoring.MetricPoints, 1); got != nil {
		t.Fatalf("expected a miss before Set, got %+v", got)
	}

	cache.Set(ctx, scoring.ThisMonth, scoring.MetricPoints, 1, page)

	got := cache.Get(ctx, scoring.ThisMonth, scoring.MetricPoints, 1)
	if got == nil {
		t.Fatal("expected a hit after Set")
	}
	if len(got.Items) != 2 || got.Items[0].Username != "alice" || got.Items[0].Value != 42 {
		t.Errorf("cached page came back wrong: %+v", got)
	}

	// Different page number is a different key.
	if got := cache.Get(ctx, scoring.ThisMonth, scoring.MetricPoints, 2); got != nil {
		t.Errorf("page 2 should be a miss, got %+v", got)
	}
}

func TestLeaderboardCache_Expires(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, scoring.Today, scoring.MetricTotalWins, 1, &scoring.Page{Page: 1})
	if got := cache.Get(ctx, scoring.Today, scoring.MetricTotalWins, 1); got == nil {
		t.Fatal("expected a hit right after Set")
	}

	mr.FastForward(leaderboardCacheTTL * 2)

	if got := cache.Get(ctx, scoring.Today, scoring.MetricTotalWins, 1); got != nil {
		t.Errorf("expected a miss after TTL, got %+v", got)
	}
}

func TestLeaderboardCache_NilClientIsDisabled(t *testing.T) {
	cache := NewLeaderboardCache(nil)
	ctx := context.Background()

	// Both directions are no-ops, never panics.
	cache.Set(ctx, scoring.AllTime, scoring.MetricPoints, 1, &scoring.Page{Page: 1})
	if got := cache.Get(ctx, scoring.AllTime, scoring.MetricPoints, 1); got != nil {
		t.Errorf("nil-client cache must always miss, got %+v", got)
	}
}
