package search

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/clipstream/clipsearch/internal/domain/relevance"
	"github.com/clipstream/clipsearch/internal/domain/user"
	"github.com/clipstream/clipsearch/pkg/apperror"
	"github.com/clipstream/clipsearch/pkg/logger"
)

type ScoredUser struct {
	User  user.User
	Score int
}

type SearchUsersUseCase struct {
	userRepo user.Repository
	recorder QueryRecorder
	logger   logger.Logger
}

func NewSearchUsersUseCase(ur user.Repository, rec QueryRecorder, log logger.Logger) *SearchUsersUseCase {
	return &SearchUsersUseCase{
		userRepo: ur,
		recorder: rec,
		logger:   log,
	}
}

type SearchUsersInput struct {
	Query string
	Limit int
}

type SearchUsersOutput struct {
	Results []ScoredUser
}

// Execute ranks the full user directory against the query. Usernames use the
// bare exact/prefix/substring chain, no secondary fields.
func (uc *SearchUsersUseCase) Execute(ctx context.Context, input SearchUsersInput) (*SearchUsersOutput, error) {
	ctx, span := tracer.Start(ctx, "SearchUsers")
	defer span.End()

	if strings.TrimSpace(input.Query) == "" {
		return &SearchUsersOutput{Results: []ScoredUser{}}, nil
	}
	if input.Limit <= 0 {
		input.Limit = defaultLimit
	}

	users, err := uc.userRepo.List(ctx)
	if err != nil {
		uc.logger.Error("Failed to load user candidates", err)
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to load user candidates", err)
	}

	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}

	matches := relevance.RankNames(input.Query, names)
	if len(matches) > input.Limit {
		matches = matches[:input.Limit]
	}

	results := make([]ScoredUser, len(matches))
	for i, m := range matches {
		results[i] = ScoredUser{User: users[m.Index], Score: m.Score}
	}

	if uc.recorder != nil {
		uc.recorder.RecordSearch(ctx, input.Query, "users", len(results))
	}

	uc.logger.Info("User search executed",
		zap.String("query", input.Query), zap.Int("results", len(results)))
	return &SearchUsersOutput{Results: results}, nil
}
