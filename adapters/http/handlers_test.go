package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authUC "github.com/clipstream/clipsearch/internal/application/usecase/auth"
	catalogUC "github.com/clipstream/clipsearch/internal/application/usecase/catalog"
	searchUC "github.com/clipstream/clipsearch/internal/application/usecase/search"
	"github.com/clipstream/clipsearch/internal/domain/user"
	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/auth"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type fakeVideoRepo struct {
	videos []video.Video
}

func (f *fakeVideoRepo) List(ctx context.Context) ([]video.Video, error) { return f.videos, nil }

func (f *fakeVideoRepo) Save(ctx context.Context, v *video.Video) error {
	f.videos = append(f.videos, *v)
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, v := range f.videos {
		if v.ID == id {
			f.videos = append(f.videos[:i], f.videos[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("video", id.String())
}

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return f.users, nil }

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	for i := range f.users {
		if f.users[i].Username == username {
			return &f.users[i], nil
		}
	}
	return nil, apperror.NewNotFound("user", username)
}

func newTestRouter(t *testing.T, videoRepo *fakeVideoRepo, userRepo *fakeUserRepo) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	log := logger.NewNop()

	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	searchHandler := NewSearchHandler(
		searchUC.NewSearchVideosUseCase(videoRepo, nil, log),
		searchUC.NewSearchUsersUseCase(userRepo, nil, log),
		log,
	)
	catalogHandler := NewCatalogHandler(
		catalogUC.NewListVideosUseCase(videoRepo, nil, log),
		catalogUC.NewCreateVideoUseCase(videoRepo, nil, log),
		catalogUC.NewDeleteVideoUseCase(videoRepo, nil, log),
		log,
	)
	authHandler := NewAuthHandler(authUC.NewLoginUseCase(userRepo, jwtSvc, log))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(log))

	router.GET("/video-list", catalogHandler.ListVideos)
	router.GET("/video-search", searchHandler.SearchVideos)
	router.GET("/search-users", searchHandler.SearchUsers)

	api := router.Group("/api")
	{
		admin := api.Group("/admin")
		admin.POST("/login", authHandler.Login)

		adminPrivate := admin.Group("/")
		adminPrivate.Use(AuthMiddleware(jwtSvc))
		{
			adminPrivate.POST("/videos", catalogHandler.CreateVideo)
			adminPrivate.DELETE("/videos/:id", catalogHandler.DeleteVideo)
		}
	}

	return router, jwtSvc
}

func seedVideos() *fakeVideoRepo {
	return &fakeVideoRepo{videos: []video.Video{
		{ID: uuid.New(), FileName: "cooking.mp4", Title: "Cooking Basics", Description: "stock and knife work"},
		{ID: uuid.New(), FileName: "tips.mp4", Title: "Basic Cooking Tips"},
		{ID: uuid.New(), FileName: "garden.mp4", Title: "Gardening"},
	}}
}

func TestVideoListEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, seedVideos(), &fakeUserRepo{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/video-list", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var dtos []VideoDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
	require.Len(t, dtos, 3)
	assert.Equal(t, "cooking.mp4", dtos[0].FileName)
	assert.Equal(t, "stock and knife work", dtos[0].Description)
}

func TestVideoSearchEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, seedVideos(), &fakeUserRepo{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/video-search?q=basic", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var dtos []ScoredVideoDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, "tips.mp4", dtos[0].FileName)
	assert.Equal(t, 80, dtos[0].Score)
	assert.Equal(t, "cooking.mp4", dtos[1].FileName)
	assert.Equal(t, 30, dtos[1].Score)
}

func TestVideoSearchEndpoint_EmptyQuery(t *testing.T) {
	router, _ := newTestRouter(t, seedVideos(), &fakeUserRepo{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/video-search", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestSearchUsersEndpoint(t *testing.T) {
	userRepo := &fakeUserRepo{users: []user.User{
		{ID: uuid.New(), Username: "alice", Role: "creator", ProfilePictureURL: "/p/alice.png"},
		{ID: uuid.New(), Username: "malice", Role: "viewer"},
		{ID: uuid.New(), Username: "bob", Role: "viewer"},
	}}
	router, _ := newTestRouter(t, seedVideos(), userRepo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/search-users?query=alice", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp SearchUsersResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 2)
	assert.Equal(t, "alice", resp.Users[0].Username)
	assert.Equal(t, "malice", resp.Users[1].Username)
}

func TestAdminCatalog_RequiresToken(t *testing.T) {
	router, _ := newTestRouter(t, seedVideos(), &fakeUserRepo{})

	body, _ := json.Marshal(CreateVideoRequest{FileName: "new.mp4", Title: "New"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/videos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminCatalog_LoginAndCreate(t *testing.T) {
	password := "handler_test_password"
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{users: []user.User{
		{ID: uuid.New(), Username: "admin", Role: "admin", PasswordHash: hash},
	}}
	videoRepo := seedVideos()
	router, _ := newTestRouter(t, videoRepo, userRepo)

	// wrong password
	body, _ := json.Marshal(gin.H{"username": "admin", "password": "nope"})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	// correct password
	body, _ = json.Marshal(gin.H{"username": "admin", "password": password})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var loginResp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	token := loginResp["access_token"]
	require.NotEmpty(t, token)

	// authenticated create
	body, _ = json.Marshal(CreateVideoRequest{FileName: "new.mp4", Title: "Brand New"})
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/admin/videos", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	assert.Len(t, videoRepo.videos, 4)
}

func TestRateLimitMiddleware(t *testing.T) {
	log := logger.NewNop()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorMiddleware(log))
	router.GET("/limited", RateLimitMiddleware(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2], "burst exhausted")
}
