package persistence

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/clipstream/clipsearch/internal/domain/analytics"
	"github.com/clipstream/clipsearch/pkg/logger"
)

const trendingQueriesKey = "clipsearch:trending-queries"

type redisQueryStatsRepo struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisQueryStatsRepo(rdb *redis.Client, log logger.Logger) analytics.Repository {
	return &redisQueryStatsRepo{rdb: rdb, logger: log}
}

func (r *redisQueryStatsRepo) IncrementQuery(ctx context.Context, query string) error {
	return r.rdb.ZIncrBy(ctx, trendingQueriesKey, 1, query).Err()
}

func (r *redisQueryStatsRepo) TopQueries(ctx context.Context, n int) ([]analytics.QueryCount, error) {
	entries, err := r.rdb.ZRevRangeWithScores(ctx, trendingQueriesKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	counts := make([]analytics.QueryCount, 0, len(entries))
	for _, e := range entries {
		query, ok := e.Member.(string)
		if !ok {
			continue
		}
		counts = append(counts, analytics.QueryCount{Query: query, Count: int64(e.Score)})
	}
	return counts, nil
}
