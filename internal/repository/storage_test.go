package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"nxn_tictactoe/internal/domain/ruleset"
	errs "nxn_tictactoe/internal/errors"
)

// These tests need live servers and are skipped unless TEST_REDIS_URL or
// TEST_MONGO_URI is set.

func TestMoveCacheRedis(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	cache := NewMoveCacheRedis(client, time.Minute)
	key := "test|" + uuid.NewString()
	defer client.Del(ctx, moveKeyPrefix+key)

	if _, ok, err := cache.GetMove(ctx, key); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	b := mustGrid(t, [][]string{{"X", "", ""}, {"", "O", ""}, {"", "", ""}})
	if err := cache.SaveMove(ctx, key, b); err != nil {
		t.Fatalf("SaveMove: %v", err)
	}
	got, ok, err := cache.GetMove(ctx, key)
	if err != nil || !ok || !got.Equal(b) {
		t.Fatalf("GetMove: %v %v %v", got.Key(), ok, err)
	}

	client.Set(ctx, moveKeyPrefix+key, "garbage", time.Minute)
	if _, _, err := cache.GetMove(ctx, key); !errors.Is(err, errs.ErrInvalidBoard) {
		t.Fatalf("corrupt entry: %v", err)
	}
}

func TestRulesMongo(t *testing.T) {
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database("nxn_test_" + uuid.NewString()[:8])
	defer db.Drop(ctx)

	repo := NewRulesMongo(zap.NewNop().Sugar(), db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	if _, err := repo.GetRuleSet(ctx, 3); !errors.Is(err, errs.ErrRulesNotArchived) {
		t.Fatalf("missing size: %v", err)
	}

	first := ruleset.RuleSet{BoardSize: 3, Patterns: [][]int{{0, 3, 6}}, GeneratedAt: time.Unix(100, 0).UTC()}
	later := first
	later.GeneratedAt = time.Unix(200, 0).UTC()
	for _, rs := range []ruleset.RuleSet{first, later, {BoardSize: 2, Patterns: [][]int{{0, 2}}}} {
		if err := repo.SaveRuleSet(ctx, rs); err != nil {
			t.Fatalf("SaveRuleSet: %v", err)
		}
	}

	got, err := repo.GetRuleSet(ctx, 3)
	if err != nil {
		t.Fatalf("GetRuleSet: %v", err)
	}
	if !got.GeneratedAt.Equal(first.GeneratedAt) {
		t.Fatalf("archived rule set was overwritten: %v", got.GeneratedAt)
	}

	sizes, err := repo.ListSizes(ctx)
	if err != nil || len(sizes) != 2 || sizes[0] != 2 || sizes[1] != 3 {
		t.Fatalf("ListSizes: %v %v", sizes, err)
	}
}
