package trending

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/internal/domain/analytics"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

const defaultTopN = 10

// RecordQueryUseCase is driven by the analytics worker for every consumed
// search event. Queries are folded so "Cats" and "cats" count together.
type RecordQueryUseCase struct {
	statsRepo analytics.Repository
	logger    logger.Logger
}

func NewRecordQueryUseCase(sr analytics.Repository, log logger.Logger) *RecordQueryUseCase {
	return &RecordQueryUseCase{statsRepo: sr, logger: log}
}

func (uc *RecordQueryUseCase) Execute(ctx context.Context, query string) error {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	if err := uc.statsRepo.IncrementQuery(ctx, query); err != nil {
		uc.logger.Error("Failed to record search query", err, zap.String("query", query))
		return apperror.NewInternal("failed to record search query", err)
	}
	return nil
}

type TrendingQueriesUseCase struct {
	statsRepo analytics.Repository
	logger    logger.Logger
}

func NewTrendingQueriesUseCase(sr analytics.Repository, log logger.Logger) *TrendingQueriesUseCase {
	return &TrendingQueriesUseCase{statsRepo: sr, logger: log}
}

type TrendingOutput struct {
	Queries []analytics.QueryCount
}

func (uc *TrendingQueriesUseCase) Execute(ctx context.Context, limit int) (*TrendingOutput, error) {
	if limit <= 0 {
		limit = defaultTopN
	}

	queries, err := uc.statsRepo.TopQueries(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to load trending queries", err)
		return nil, apperror.NewInternal("failed to load trending queries", err)
	}

	return &TrendingOutput{Queries: queries}, nil
}
