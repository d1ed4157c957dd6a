package storage

import (
	"context"
	"testing"

	"chirper/internal/pool"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLists(t *testing.T) (*RedisLists, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLists(rdb), mr
}

func TestLoadMissingList(t *testing.T) {
	s, _ := newLists(t)
	_, err := s.Load(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, pool.ErrSourceNotFound)
}

func TestSeedReplacesList(t *testing.T) {
	s, mr := newLists(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, "food", []string{"a", "b"}))
	require.NoError(t, s.Seed(ctx, "food", []string{"c"}))

	items, err := s.Load(ctx, "food")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, items)

	stored, err := mr.List("chirper:pool:food")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, stored)
}

func TestSeedEmptyClearsList(t *testing.T) {
	s, _ := newLists(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, "food", []string{"a"}))
	require.NoError(t, s.Seed(ctx, "food", nil))
	_, err := s.Load(ctx, "food")
	assert.ErrorIs(t, err, pool.ErrSourceNotFound)
}

func TestSizesSorted(t *testing.T) {
	s, mr := newLists(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, "nicknames", []string{"champ", "sunshine"}))
	require.NoError(t, s.Seed(ctx, "food", []string{"ramen"}))
	_, err := mr.Lpush("unrelated", "x")
	require.NoError(t, err)

	sizes, err := s.Sizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ListSize{{Key: "food", Len: 1}, {Key: "nicknames", Len: 2}}, sizes)
}

func TestRoutedPoolLoad(t *testing.T) {
	s, _ := newLists(t)
	ctx := context.Background()
	router := pool.Router{
		Default: pool.FileLoader{Dir: t.TempDir()},
		Schemes: map[string]pool.Loader{Scheme: s},
	}

	p := pool.Load(ctx, router, "<food>", "redis:food", []string{"pancakes"}, nil)
	assert.Equal(t, []string{"pancakes"}, p.Items())

	require.NoError(t, s.Seed(ctx, "food", []string{"c"}))
	p = pool.Load(ctx, router, "<food>", "redis:food", []string{"pancakes"}, nil)
	assert.Equal(t, []string{"c"}, p.Items())
}
