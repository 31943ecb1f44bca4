package http

import (
	"time"

	"github.com/clipstream/clipsearch/internal/application/usecase/search"
	"github.com/clipstream/clipsearch/internal/domain/analytics"
	"github.com/clipstream/clipsearch/internal/domain/video"
)

// Video DTOs

// VideoDTO is the /video-list candidate shape consumed by the session client.
type VideoDTO struct {
	FileName    string `json:"fileName"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

func ToVideoDTO(v video.Video) VideoDTO {
	return VideoDTO{
		FileName:    v.FileName,
		Title:       v.Title,
		Description: v.Description,
	}
}

type ScoredVideoDTO struct {
	FileName    string `json:"fileName"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Score       int    `json:"score"`
}

func ToScoredVideoDTO(sv search.ScoredVideo) ScoredVideoDTO {
	return ScoredVideoDTO{
		FileName:    sv.Video.FileName,
		Title:       sv.Video.Title,
		Description: sv.Video.Description,
		Score:       sv.Score,
	}
}

// User DTOs

type UserDTO struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Role              string `json:"role"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

func ToUserDTO(su search.ScoredUser) UserDTO {
	return UserDTO{
		ID:                su.User.ID.String(),
		Username:          su.User.Username,
		Role:              su.User.Role,
		ProfilePictureURL: su.User.ProfilePictureURL,
	}
}

type SearchUsersResponse struct {
	Users []UserDTO `json:"users"`
}

// Admin catalog DTOs

type CreateVideoRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type VideoCreatedResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// Trending DTOs

type TrendingQueryDTO struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

func ToTrendingQueryDTO(qc analytics.QueryCount) TrendingQueryDTO {
	return TrendingQueryDTO{Query: qc.Query, Count: qc.Count}
}
