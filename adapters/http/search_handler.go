package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	searchUC "github.com/clipstream/clipsearch/internal/application/usecase/search"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type SearchHandler struct {
	searchVideos *searchUC.SearchVideosUseCase
	searchUsers  *searchUC.SearchUsersUseCase
	logger       logger.Logger
}

func NewSearchHandler(sv *searchUC.SearchVideosUseCase, su *searchUC.SearchUsersUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchVideos: sv,
		searchUsers:  su,
		logger:       log,
	}
}

// SearchVideos handles GET /video-search?q=&limit=.
// An empty query is not an error; it returns an empty ranked list without
// touching the catalog.
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	output, err := h.searchVideos.Execute(c.Request.Context(), searchUC.SearchVideosInput{
		Query: query,
		Limit: limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ScoredVideoDTO, len(output.Results))
	for i, res := range output.Results {
		dtos[i] = ToScoredVideoDTO(res)
	}
	c.JSON(http.StatusOK, dtos)
}

// SearchUsers handles GET /search-users?query=&limit=, the collaborator
// endpoint the combined session client calls instead of ranking the whole
// directory itself.
func (h *SearchHandler) SearchUsers(c *gin.Context) {
	query := c.Query("query")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	output, err := h.searchUsers.Execute(c.Request.Context(), searchUC.SearchUsersInput{
		Query: query,
		Limit: limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]UserDTO, len(output.Results))
	for i, res := range output.Results {
		dtos[i] = ToUserDTO(res)
	}
	c.JSON(http.StatusOK, SearchUsersResponse{Users: dtos})
}
