package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipstream/clipsearch/internal/domain/user"
	"github.com/clipstream/clipsearch/internal/domain/video"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type fakeVideoRepo struct {
	videos []video.Video
	err    error
	calls  int
}

func (f *fakeVideoRepo) List(ctx context.Context) ([]video.Video, error) {
	f.calls++
	return f.videos, f.err
}

func (f *fakeVideoRepo) Save(ctx context.Context, v *video.Video) error { return nil }

func (f *fakeVideoRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeUserRepo struct {
	users []user.User
	err   error
	calls int
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	f.calls++
	return f.users, f.err
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

type recordedSearch struct {
	query       string
	source      string
	resultCount int
}

type fakeRecorder struct {
	events []recordedSearch
}

func (f *fakeRecorder) RecordSearch(ctx context.Context, query, source string, resultCount int) {
	f.events = append(f.events, recordedSearch{query, source, resultCount})
}

func TestSearchVideos_RanksAndExcludes(t *testing.T) {
	repo := &fakeVideoRepo{videos: []video.Video{
		{FileName: "cooking.mp4", Title: "Cooking Basics"},
		{FileName: "tips.mp4", Title: "Basic Cooking Tips"},
		{FileName: "garden.mp4", Title: "Gardening"},
	}}
	recorder := &fakeRecorder{}
	uc := NewSearchVideosUseCase(repo, recorder, logger.NewNop())

	output, err := uc.Execute(context.Background(), SearchVideosInput{Query: "basic"})
	require.NoError(t, err)

	require.Len(t, output.Results, 2)
	assert.Equal(t, "tips.mp4", output.Results[0].Video.FileName)
	assert.Equal(t, 80, output.Results[0].Score)
	assert.Equal(t, "cooking.mp4", output.Results[1].Video.FileName)
	assert.Equal(t, 30, output.Results[1].Score)

	for i := 1; i < len(output.Results); i++ {
		assert.GreaterOrEqual(t, output.Results[i-1].Score, output.Results[i].Score)
	}

	require.Len(t, recorder.events, 1)
	assert.Equal(t, recordedSearch{"basic", "videos", 2}, recorder.events[0])
}

func TestSearchVideos_EmptyQueryShortCircuits(t *testing.T) {
	repo := &fakeVideoRepo{videos: []video.Video{{FileName: "x.mp4", Title: "X"}}}
	recorder := &fakeRecorder{}
	uc := NewSearchVideosUseCase(repo, recorder, logger.NewNop())

	for _, q := range []string{"", "   ", "\t"} {
		output, err := uc.Execute(context.Background(), SearchVideosInput{Query: q})
		require.NoError(t, err)
		assert.Empty(t, output.Results)
	}

	assert.Zero(t, repo.calls, "empty query must not touch the repository")
	assert.Empty(t, recorder.events)
}

func TestSearchVideos_AppliesLimit(t *testing.T) {
	videos := make([]video.Video, 30)
	for i := range videos {
		videos[i] = video.Video{FileName: "v.mp4", Title: "cats compilation"}
	}
	uc := NewSearchVideosUseCase(&fakeVideoRepo{videos: videos}, nil, logger.NewNop())

	output, err := uc.Execute(context.Background(), SearchVideosInput{Query: "cats", Limit: 5})
	require.NoError(t, err)
	assert.Len(t, output.Results, 5)

	// zero limit falls back to the default
	output, err = uc.Execute(context.Background(), SearchVideosInput{Query: "cats"})
	require.NoError(t, err)
	assert.Len(t, output.Results, defaultLimit)
}

func TestSearchVideos_RepoErrorWrapped(t *testing.T) {
	uc := NewSearchVideosUseCase(&fakeVideoRepo{err: errors.New("db down")}, nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), SearchVideosInput{Query: "cats"})
	assert.Error(t, err)
}

func TestSearchUsers_RanksByUsername(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{
		{ID: uuid.New(), Username: "carol"},
		{ID: uuid.New(), Username: "alice"},
		{ID: uuid.New(), Username: "ali"},
		{ID: uuid.New(), Username: "malice"},
	}}
	recorder := &fakeRecorder{}
	uc := NewSearchUsersUseCase(repo, recorder, logger.NewNop())

	output, err := uc.Execute(context.Background(), SearchUsersInput{Query: "ali"})
	require.NoError(t, err)

	require.Len(t, output.Results, 3)
	assert.Equal(t, "ali", output.Results[0].User.Username)
	assert.Equal(t, 100, output.Results[0].Score)
	assert.Equal(t, "alice", output.Results[1].User.Username)
	assert.Equal(t, 75, output.Results[1].Score)
	assert.Equal(t, "malice", output.Results[2].User.Username)
	assert.Equal(t, 25, output.Results[2].Score)

	require.Len(t, recorder.events, 1)
	assert.Equal(t, recordedSearch{"ali", "users", 3}, recorder.events[0])
}

func TestSearchUsers_EmptyQueryShortCircuits(t *testing.T) {
	repo := &fakeUserRepo{users: []user.User{{Username: "alice"}}}
	uc := NewSearchUsersUseCase(repo, nil, logger.NewNop())

	output, err := uc.Execute(context.Background(), SearchUsersInput{Query: "  "})
	require.NoError(t, err)
	assert.Empty(t, output.Results)
	assert.Zero(t, repo.calls)
}
