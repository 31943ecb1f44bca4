package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type CreateVideoUseCase struct {
	videoRepo video.Repository
	cache     ListCache
	logger    logger.Logger
}

func NewCreateVideoUseCase(vr video.Repository, cache ListCache, log logger.Logger) *CreateVideoUseCase {
	return &CreateVideoUseCase{
		videoRepo: vr,
		cache:     cache,
		logger:    log,
	}
}

type CreateVideoInput struct {
	OwnerID     uuid.UUID
	FileName    string
	Title       string
	Description string
}

type CreateVideoOutput struct {
	VideoID uuid.UUID
}

func (uc *CreateVideoUseCase) Execute(ctx context.Context, input CreateVideoInput) (*CreateVideoOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateVideo")
	defer span.End()

	input.FileName = strings.TrimSpace(input.FileName)
	input.Title = strings.TrimSpace(input.Title)
	if input.FileName == "" {
		return nil, apperror.NewInvalidInput("file_name is required", nil)
	}
	if input.Title == "" {
		return nil, apperror.NewInvalidInput("title is required", nil)
	}

	v := &video.Video{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		FileName:    input.FileName,
		Title:       input.Title,
		Description: input.Description,
		UploadedAt:  time.Now().UTC(),
	}

	if err := uc.videoRepo.Save(ctx, v); err != nil {
		uc.logger.Error("Failed to save video", err, zap.String("file_name", v.FileName))
		span.RecordError(err)
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateVideoList(ctx)
	}

	uc.logger.Info("Video catalog entry created",
		zap.String("video_id", v.ID.String()), zap.String("file_name", v.FileName))
	return &CreateVideoOutput{VideoID: v.ID}, nil
}
