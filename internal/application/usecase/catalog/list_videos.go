package catalog

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

var tracer = otel.Tracer("catalog_usecase")

// ListCache fronts the catalog with a short-lived copy of the full video
// list. A miss falls through to Postgres; writes invalidate.
type ListCache interface {
	GetVideoList(ctx context.Context) ([]video.Video, bool)
	SetVideoList(ctx context.Context, videos []video.Video)
	InvalidateVideoList(ctx context.Context)
}

type ListVideosUseCase struct {
	videoRepo video.Repository
	cache     ListCache
	logger    logger.Logger
}

func NewListVideosUseCase(vr video.Repository, cache ListCache, log logger.Logger) *ListVideosUseCase {
	return &ListVideosUseCase{
		videoRepo: vr,
		cache:     cache,
		logger:    log,
	}
}

type ListVideosOutput struct {
	Videos []video.Video
}

func (uc *ListVideosUseCase) Execute(ctx context.Context) (*ListVideosOutput, error) {
	ctx, span := tracer.Start(ctx, "ListVideos")
	defer span.End()

	if uc.cache != nil {
		if videos, ok := uc.cache.GetVideoList(ctx); ok {
			return &ListVideosOutput{Videos: videos}, nil
		}
	}

	videos, err := uc.videoRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to list videos", err)
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to list videos", err)
	}

	if uc.cache != nil {
		uc.cache.SetVideoList(ctx, videos)
	}

	uc.logger.Debug("Video list served from repository", zap.Int("count", len(videos)))
	return &ListVideosOutput{Videos: videos}, nil
}
