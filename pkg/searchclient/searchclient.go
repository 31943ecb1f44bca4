// Package searchclient implements the incremental search session embedded by
// ClipStream host UIs. A Session owns the query string, debounces keystrokes,
// fetches the candidate set from the clipsearch collaborator endpoints,
// ranks it with the relevance rules and publishes the resulting state.
//
// The central guarantee is that visible results always correspond to the most
// recent query: every pass is tagged with a generation counter and a resolved
// pass whose generation is no longer current is discarded, so a slow stale
// response can never overwrite a faster newer one.
package searchclient

import (
	"context"
)

// VideoCandidate mirrors the /video-list payload. Title is the scored field;
// Description is secondary and may be absent.
type VideoCandidate struct {
	FileName    string `json:"fileName"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UserCandidate mirrors one entry of the /search-users payload.
type UserCandidate struct {
	ID                string `json:"id"`
	Username          string `json:"username"`
	Role              string `json:"role"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// VideoSource returns the full candidate set. Sessions call it once per pass
// and re-score from scratch; the source may cache server-side but the session
// never does.
type VideoSource interface {
	ListVideos(ctx context.Context) ([]VideoCandidate, error)
}

// UserSource performs the server-side user search used by combined sessions.
type UserSource interface {
	SearchUsers(ctx context.Context, query string) ([]UserCandidate, error)
}

type ResultType string

const (
	ResultTypeVideo ResultType = "video"
	ResultTypeUser  ResultType = "user"
)

// Result is one ranked entry. Key is what Select hands to the host: the
// video's file name or the user's username.
type Result struct {
	Type  ResultType
	Key   string
	Title string
	Score int

	Video *VideoCandidate
	User  *UserCandidate
}

// State is the session snapshot exposed for rendering. ShowResults stays
// true on an empty Results slice so hosts can render a "no results" row, and
// Err distinguishes a collaborator failure from a clean zero-match pass.
type State struct {
	SearchTerm  string
	Results     []Result
	IsSearching bool
	ShowResults bool
	Err         string
}
