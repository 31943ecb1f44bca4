package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/clipstream/clipsearch/internal/application/usecase/catalog"
	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/logger"
)

const videoListKey = "clipsearch:video-list"

// redisVideoCache keeps one serialized copy of the full candidate list. It
// is strictly a read-path accelerator: every error degrades to a miss so the
// catalog never becomes unavailable because Redis is.
type redisVideoCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisVideoCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) catalog.ListCache {
	return &redisVideoCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *redisVideoCache) GetVideoList(ctx context.Context) ([]video.Video, bool) {
	payload, err := c.rdb.Get(ctx, videoListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Video list cache read failed")
		}
		return nil, false
	}

	var videos []video.Video
	if err := json.Unmarshal(payload, &videos); err != nil {
		c.logger.Warn("Video list cache held malformed payload, dropping it")
		c.rdb.Del(ctx, videoListKey)
		return nil, false
	}
	return videos, true
}

func (c *redisVideoCache) SetVideoList(ctx context.Context, videos []video.Video) {
	payload, err := json.Marshal(videos)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, videoListKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Video list cache write failed")
	}
}

func (c *redisVideoCache) InvalidateVideoList(ctx context.Context) {
	if err := c.rdb.Del(ctx, videoListKey).Err(); err != nil {
		c.logger.Warn("Video list cache invalidation failed")
	}
}
