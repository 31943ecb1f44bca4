package analytics

import "context"

// QueryCount is one entry of the trending-queries leaderboard.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

type Repository interface {
	IncrementQuery(ctx context.Context, query string) error

	TopQueries(ctx context.Context, n int) ([]QueryCount, error)
}
