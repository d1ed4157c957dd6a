package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"chirper/internal/pool"

	"github.com/redis/go-redis/v9"
)

// Scheme is the identifier prefix routed to RedisLists, as in "redis:nicknames".
const Scheme = "redis"

// RedisLists keeps pool entries in Redis lists under a key prefix.
type RedisLists struct {
	rdb    redis.Cmdable
	prefix string
}

// NewRedisLists stores lists under "chirper:pool:<key>".
func NewRedisLists(rdb redis.Cmdable) *RedisLists {
	return &RedisLists{rdb: rdb, prefix: "chirper:pool:"}
}

func (s *RedisLists) listKey(key string) string {
	return s.prefix + strings.TrimSpace(key)
}

// Load implements pool.Loader. A missing or empty list is ErrSourceNotFound.
func (s *RedisLists) Load(ctx context.Context, key string) ([]string, error) {
	items, err := s.rdb.LRange(ctx, s.listKey(key), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: redis list %s", pool.ErrSourceNotFound, s.listKey(key))
	}
	return items, nil
}

// Seed replaces the list stored under key with items.
func (s *RedisLists) Seed(ctx context.Context, key string, items []string) error {
	k := s.listKey(key)
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, k)
		if len(items) > 0 {
			vals := make([]any, len(items))
			for i, it := range items {
				vals[i] = it
			}
			p.RPush(ctx, k, vals...)
		}
		return nil
	})
	return err
}

// ListSize is the length of one stored pool.
type ListSize struct {
	Key string
	Len int64
}

// Sizes reports every stored pool, sorted by key.
func (s *RedisLists) Sizes(ctx context.Context) ([]ListSize, error) {
	var out []ListSize
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		n, err := s.rdb.LLen(ctx, k).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, ListSize{Key: strings.TrimPrefix(k, s.prefix), Len: n})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
