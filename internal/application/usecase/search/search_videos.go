package search

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/internal/domain/relevance"
	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

const defaultLimit = 20

var tracer = otel.Tracer("search_usecase")

// QueryRecorder receives fire-and-forget search events for the analytics
// pipeline. Implemented by the Kafka producer adapter.
type QueryRecorder interface {
	RecordSearch(ctx context.Context, query, source string, resultCount int)
}

type ScoredVideo struct {
	Video video.Video
	Score int
}

type SearchVideosUseCase struct {
	videoRepo video.Repository
	recorder  QueryRecorder
	logger    logger.Logger
}

func NewSearchVideosUseCase(vr video.Repository, rec QueryRecorder, log logger.Logger) *SearchVideosUseCase {
	return &SearchVideosUseCase{
		videoRepo: vr,
		recorder:  rec,
		logger:    log,
	}
}

type SearchVideosInput struct {
	Query string
	Limit int
}

type SearchVideosOutput struct {
	Results []ScoredVideo
}

func (uc *SearchVideosUseCase) Execute(ctx context.Context, input SearchVideosInput) (*SearchVideosOutput, error) {
	ctx, span := tracer.Start(ctx, "SearchVideos")
	defer span.End()

	if strings.TrimSpace(input.Query) == "" {
		return &SearchVideosOutput{Results: []ScoredVideo{}}, nil
	}
	if input.Limit <= 0 {
		input.Limit = defaultLimit
	}

	videos, err := uc.videoRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load video candidates", err)
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load video candidates", err)
	}

	docs := make([]relevance.Document, len(videos))
	for i, v := range videos {
		docs[i] = relevance.Document{Title: v.Title, Description: v.Description}
	}

	matches := relevance.RankDocuments(input.Query, docs)
	if len(matches) > input.Limit {
		matches = matches[:input.Limit]
	}

	results := make([]ScoredVideo, len(matches))
	for i, m := range matches {
		results[i] = ScoredVideo{Video: videos[m.Index], Score: m.Score}
	}

	span.SetAttributes(
		attribute.String("query", input.Query),
		attribute.Int("result_count", len(results)),
	)

	if uc.recorder != nil {
		uc.recorder.RecordSearch(ctx, input.Query, "videos", len(results))
	}

	uc.logger.Info("Video search executed",
		zap.String("query", input.Query), zap.Int("results", len(results)))
	return &SearchVideosOutput{Results: results}, nil
}
