package searchclient

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/clipstream/clipsearch/internal/domain/relevance"
	"github.com/clipstream/clipsearch/pkg/logger"
)

const (
	// DefaultDebounce matches the reference typeahead behavior.
	DefaultDebounce = 300 * time.Millisecond

	// DefaultPassTimeout bounds one fetch-and-score pass so a hung
	// collaborator resolves into the error state instead of leaving the
	// session searching forever.
	DefaultPassTimeout = 5 * time.Second

	errVideosMsg = "Failed to load videos. Please try again."
	errUsersMsg  = "Failed to search users. Please try again."
)

// Options configures a Session. Zero values fall back to the defaults above.
type Options struct {
	Debounce    time.Duration
	PassTimeout time.Duration

	// OnUpdate receives every state change. It is invoked outside the
	// session lock, so it may call Snapshot or mutate the session.
	OnUpdate func(State)

	// OnResultSelect receives the selected result's key (file name or
	// username) after Select resets the session.
	OnResultSelect func(key string)

	Logger logger.Logger
}

// Session is the debounced search controller. One instance per search box;
// all methods are safe for concurrent use, though in practice a single UI
// goroutine drives it.
type Session struct {
	videos VideoSource
	users  UserSource

	debounce    time.Duration
	passTimeout time.Duration
	onUpdate    func(State)
	onSelect    func(string)
	log         logger.Logger

	mu         sync.Mutex
	state      State
	timer      *time.Timer
	generation uint64
	closed     bool
}

// NewSession builds a video-only session.
func NewSession(videos VideoSource, opts Options) *Session {
	return newSession(videos, nil, opts)
}

// NewCombinedSession builds a session ranking videos and users under one
// query. The two fetches run concurrently and are joined before commit;
// results concatenate videos-then-users with no cross-type re-ranking.
func NewCombinedSession(videos VideoSource, users UserSource, opts Options) *Session {
	return newSession(videos, users, opts)
}

func newSession(videos VideoSource, users UserSource, opts Options) *Session {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.PassTimeout <= 0 {
		opts.PassTimeout = DefaultPassTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &Session{
		videos:      videos,
		users:       users,
		debounce:    opts.Debounce,
		passTimeout: opts.PassTimeout,
		onUpdate:    opts.OnUpdate,
		onSelect:    opts.OnResultSelect,
		log:         opts.Logger,
	}
}

// SetQuery records a keystroke. A pending debounce timer is always cancelled
// and any in-flight pass is invalidated; a blank query resets to idle without
// ever touching a collaborator.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	s.state.SearchTerm = query
	s.cancelTimerLocked()
	s.generation++

	if strings.TrimSpace(query) == "" {
		s.state.Results = nil
		s.state.IsSearching = false
		s.state.ShowResults = false
		s.state.Err = ""
		s.publishLocked()
		return
	}

	gen := s.generation
	s.timer = time.AfterFunc(s.debounce, func() {
		s.runPass(gen, query)
	})
	s.publishLocked()
}

// Select resets the session to idle and reports the chosen key to the host.
func (s *Session) Select(r Result) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.cancelTimerLocked()
	s.generation++
	s.state = State{}
	s.publishLocked()

	if s.onSelect != nil {
		s.onSelect(r.Key)
	}
}

// Dismiss hides the result surface (click outside) without clearing the
// query or the ranked results.
func (s *Session) Dismiss() {
	s.mu.Lock()
	if s.closed || !s.state.ShowResults {
		s.mu.Unlock()
		return
	}
	s.state.ShowResults = false
	s.publishLocked()
}

// Reshow re-displays previously computed results after a Dismiss, without
// issuing a new pass. No-op while idle.
func (s *Session) Reshow() {
	s.mu.Lock()
	if s.closed || s.state.ShowResults || strings.TrimSpace(s.state.SearchTerm) == "" || s.state.Results == nil {
		s.mu.Unlock()
		return
	}
	s.state.ShowResults = true
	s.publishLocked()
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close invalidates pending timers and in-flight passes. The session ignores
// all calls afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.cancelTimerLocked()
}

func (s *Session) runPass(gen uint64, query string) {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.state.IsSearching = true
	s.publishLocked()

	ctx, cancel := context.WithTimeout(context.Background(), s.passTimeout)
	defer cancel()

	results, errMsg := s.fetchAndRank(ctx, query)

	s.mu.Lock()
	if s.closed || gen != s.generation {
		// A newer query superseded this pass while it was in flight;
		// the work is discarded, never rendered.
		s.mu.Unlock()
		return
	}
	s.state.Results = results
	s.state.IsSearching = false
	s.state.ShowResults = true
	s.state.Err = errMsg
	s.publishLocked()
}

func (s *Session) fetchAndRank(ctx context.Context, query string) ([]Result, string) {
	var (
		videoResults []Result
		userResults  []Result
		videoErr     error
		userErr      error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		videoResults, videoErr = s.rankVideos(gctx, query)
		return nil
	})
	if s.users != nil {
		g.Go(func() error {
			userResults, userErr = s.rankUsers(gctx, query)
			return nil
		})
	}
	_ = g.Wait()

	// A failed source contributes zero results, not a panic or an abort of
	// the other source.
	switch {
	case videoErr != nil:
		s.log.Error("Video candidate fetch failed", videoErr)
		return append(videoResults, userResults...), errVideosMsg
	case userErr != nil:
		s.log.Error("User search failed", userErr)
		return append(videoResults, userResults...), errUsersMsg
	}
	return append(videoResults, userResults...), ""
}

func (s *Session) rankVideos(ctx context.Context, query string) ([]Result, error) {
	candidates, err := s.videos.ListVideos(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]relevance.Document, len(candidates))
	for i, cand := range candidates {
		docs[i] = relevance.Document{Title: cand.Title, Description: cand.Description}
	}

	matches := relevance.RankDocuments(query, docs)
	results := make([]Result, len(matches))
	for i, m := range matches {
		cand := candidates[m.Index]
		results[i] = Result{
			Type:  ResultTypeVideo,
			Key:   cand.FileName,
			Title: cand.Title,
			Score: m.Score,
			Video: &cand,
		}
	}
	return results, nil
}

func (s *Session) rankUsers(ctx context.Context, query string) ([]Result, error) {
	candidates, err := s.users.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(candidates))
	for i, cand := range candidates {
		names[i] = cand.Username
	}

	matches := relevance.RankNames(query, names)
	results := make([]Result, len(matches))
	for i, m := range matches {
		cand := candidates[m.Index]
		results[i] = Result{
			Type:  ResultTypeUser,
			Key:   cand.Username,
			Title: cand.Username,
			Score: m.Score,
			User:  &cand,
		}
	}
	return results, nil
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) snapshotLocked() State {
	snap := s.state
	if s.state.Results != nil {
		snap.Results = make([]Result, len(s.state.Results))
		copy(snap.Results, s.state.Results)
	}
	return snap
}

// publishLocked snapshots while holding the lock, releases it, then invokes
// OnUpdate so the callback can safely re-enter the session.
func (s *Session) publishLocked() {
	snap := s.snapshotLocked()
	s.mu.Unlock()
	if s.onUpdate != nil {
		s.onUpdate(snap)
	}
}
