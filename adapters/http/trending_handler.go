package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	trendingUC "github.com/clipstream/clipsearch/internal/application/usecase/trending"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type TrendingHandler struct {
	trending *trendingUC.TrendingQueriesUseCase
	logger   logger.Logger
}

func NewTrendingHandler(uc *trendingUC.TrendingQueriesUseCase, log logger.Logger) *TrendingHandler {
	return &TrendingHandler{trending: uc, logger: log}
}

// Trending handles GET /search/trending?limit=.
func (h *TrendingHandler) Trending(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	output, err := h.trending.Execute(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]TrendingQueryDTO, len(output.Queries))
	for i, q := range output.Queries {
		dtos[i] = ToTrendingQueryDTO(q)
	}
	c.JSON(http.StatusOK, gin.H{"queries": dtos})
}
