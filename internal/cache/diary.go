package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/templui/diary/internal/model"
)

const (
	keyDiaryList = "diary:list"
	keyDiaryGen  = "diary:list:gen"
)

// setIfGeneration stores the list only while the generation still matches
// the one read before the store was queried.
var setIfGeneration = redis.NewScript(`
local gen = redis.call("GET", KEYS[1]) or "0"
if gen ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// DiaryCache caches the full diary list in Redis.
type DiaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDiaryCache(rdb *redis.Client, ttl time.Duration) *DiaryCache {
	return &DiaryCache{rdb: rdb, ttl: ttl}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	err = rdb.Ping(ctx).Err()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// List returns the cached list, or nil on a miss.
func (c *DiaryCache) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	b, err := c.rdb.Get(ctx, keyDiaryList).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var list []*model.DiaryEntry
	err = json.Unmarshal(b, &list)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Generation returns the invalidation counter. Read it before loading the
// list from the store and hand it back to SetList.
func (c *DiaryCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, keyDiaryGen).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

// SetList caches list unless an invalidation happened after gen was read.
func (c *DiaryCache) SetList(ctx context.Context, gen int64, list []*model.DiaryEntry) error {
	if list == nil {
		list = []*model.DiaryEntry{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}

	keys := []string{keyDiaryGen, keyDiaryList}
	return setIfGeneration.Run(ctx, c.rdb, keys, gen, b, c.ttl.Milliseconds()).Err()
}

// Invalidate drops the cached list and bumps the generation so in-flight
// loads cannot write back an older snapshot.
func (c *DiaryCache) Invalidate(ctx context.Context) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, keyDiaryGen)
		pipe.Del(ctx, keyDiaryList)
		return nil
	})
	return err
}
