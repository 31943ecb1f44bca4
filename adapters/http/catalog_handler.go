package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogUC "github.com/clipstream/clipsearch/internal/application/usecase/catalog"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type CatalogHandler struct {
	listVideos  *catalogUC.ListVideosUseCase
	createVideo *catalogUC.CreateVideoUseCase
	deleteVideo *catalogUC.DeleteVideoUseCase
	logger      logger.Logger
}

func NewCatalogHandler(
	list *catalogUC.ListVideosUseCase,
	create *catalogUC.CreateVideoUseCase,
	del *catalogUC.DeleteVideoUseCase,
	log logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		listVideos:  list,
		createVideo: create,
		deleteVideo: del,
		logger:      log,
	}
}

// ListVideos handles GET /video-list: the full candidate set every search
// pass re-scores from scratch.
func (h *CatalogHandler) ListVideos(c *gin.Context) {
	output, err := h.listVideos.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]VideoDTO, len(output.Videos))
	for i, v := range output.Videos {
		dtos[i] = ToVideoDTO(v)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *CatalogHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("malformed video payload", err))
		return
	}

	ownerID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	output, err := h.createVideo.Execute(c.Request.Context(), catalogUC.CreateVideoInput{
		OwnerID:     ownerID,
		FileName:    req.FileName,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, VideoCreatedResponse{
		ID:        output.VideoID.String(),
		CreatedAt: time.Now().UTC(),
	})
}

func (h *CatalogHandler) DeleteVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid video id", err))
		return
	}

	if err := h.deleteVideo.Execute(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
