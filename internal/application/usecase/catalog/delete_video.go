package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type DeleteVideoUseCase struct {
	videoRepo video.Repository
	cache     ListCache
	logger    logger.Logger
}

func NewDeleteVideoUseCase(vr video.Repository, cache ListCache, log logger.Logger) *DeleteVideoUseCase {
	return &DeleteVideoUseCase{
		videoRepo: vr,
		cache:     cache,
		logger:    log,
	}
}

func (uc *DeleteVideoUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ctx, span := tracer.Start(ctx, "DeleteVideo")
	defer span.End()

	if err := uc.videoRepo.Delete(ctx, id); err != nil {
		uc.logger.Error("Failed to delete video", err, zap.String("video_id", id.String()))
		span.RecordError(err)
		return err
	}

	if uc.cache != nil {
		uc.cache.InvalidateVideoList(ctx)
	}

	uc.logger.Info("Video catalog entry deleted", zap.String("video_id", id.String()))
	return nil
}
