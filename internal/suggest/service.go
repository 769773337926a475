// Package suggest drives the autocomplete flow: debounced queries, at most
// one in-flight search, and stale results dropped in favor of the latest.
package suggest

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/worldjourney/platoo/internal/gazetteer"
	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/rank"
	"github.com/worldjourney/platoo/internal/remote"
)

// Default tunables for the suggestion flow.
const (
	DefaultDebounce      = 300 * time.Millisecond
	DefaultRemoteTimeout = 3500 * time.Millisecond
)

// Options tunes the service.
type Options struct {
	Debounce      time.Duration
	RemoteTimeout time.Duration
	DefaultLimit  int
	MaxLimit      int
}

// DefaultOptions returns the production tuning.
func DefaultOptions() Options {
	return Options{
		Debounce:      DefaultDebounce,
		RemoteTimeout: DefaultRemoteTimeout,
		DefaultLimit:  rank.DefaultLimit,
		MaxLimit:      rank.MaxLimit,
	}
}

// Result is one emitted suggestion set. Source says where the suggestions
// came from; Advisory carries the one-time notice when the upstream
// directory could not be reached.
type Result struct {
	Query       string              `json:"query"`
	Suggestions []models.Suggestion `json:"suggestions"`
	Source      string              `json:"source"`
	Advisory    string              `json:"advisory,omitempty"`
}

// Suggestion sources.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

const remoteDownAdvisory = "remote place directory unavailable, showing local matches only"

// Service turns a stream of keystroke-level queries into at most one search
// at a time. Safe for concurrent use.
type Service struct {
	provider *gazetteer.Provider
	ranker   *rank.Ranker
	remote   remote.Client
	logger   *zap.Logger
	opts     Options

	generation atomic.Uint64
	advisory   atomic.Bool

	mu      sync.Mutex
	timer   *time.Timer
	cancel  context.CancelFunc
	results chan Result
	closed  bool
}

// NewService builds a service. remoteClient may be nil to run local-only.
func NewService(provider *gazetteer.Provider, ranker *rank.Ranker, remoteClient remote.Client, opts Options, logger *zap.Logger) *Service {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RemoteTimeout <= 0 {
		opts.RemoteTimeout = DefaultRemoteTimeout
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = rank.DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = rank.MaxLimit
	}
	return &Service{
		provider: provider,
		ranker:   ranker,
		remote:   remoteClient,
		logger:   logger,
		opts:     opts,
		results:  make(chan Result, 1),
	}
}

// Results returns the channel the service emits on. Only the freshest result
// is retained; a slow consumer never sees suggestions for an abandoned query.
func (s *Service) Results() <-chan Result {
	return s.results
}

// Query schedules a search for q after the debounce window. A newer call
// supersedes this one: the pending timer is reset and any in-flight search is
// cancelled when the new one starts.
func (s *Service) Query(q string, limit int) {
	gen := s.generation.Add(1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.run(gen, q, limit)
	})
}

func (s *Service) run(gen uint64, q string, limit int) {
	if s.generation.Load() != gen {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	res := s.Search(ctx, q, limit)
	if ctx.Err() != nil || s.generation.Load() != gen {
		return
	}
	s.emit(res)
}

// Search runs one suggestion lookup synchronously: local ranking first, with
// a time-bounded remote lookup only when the gazetteer has nothing. Remote
// failure degrades to an empty local result carrying a one-time advisory.
func (s *Service) Search(ctx context.Context, q string, limit int) Result {
	if limit <= 0 {
		limit = s.opts.DefaultLimit
	}
	if limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}
	res := Result{Query: q, Source: SourceLocal}

	snap := s.provider.Snapshot()
	candidates := s.ranker.Rank(q, snap, limit)
	if len(candidates) > 0 {
		res.Suggestions = make([]models.Suggestion, 0, len(candidates))
		for _, c := range candidates {
			res.Suggestions = append(res.Suggestions, c.DisplayRecord())
		}
		return res
	}
	if s.remote == nil || q == "" {
		return res
	}

	rctx, cancel := context.WithTimeout(ctx, s.opts.RemoteTimeout)
	defer cancel()
	entries, err := s.remote.Lookup(rctx, q, limit)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("remote lookup failed", zap.String("query", q), zap.Error(err))
		}
		if s.advisory.CompareAndSwap(false, true) {
			res.Advisory = remoteDownAdvisory
		}
		return res
	}
	res.Source = SourceRemote
	for i, e := range entries {
		if i >= limit {
			break
		}
		res.Suggestions = append(res.Suggestions, models.Suggestion{
			Name:       e.Name,
			Subtitle:   e.Subtitle(),
			Popularity: e.Popularity,
			Thumbnail:  e.Thumbnail,
			Kind:       SourceRemote,
		})
	}
	return res
}

// emit keeps only the freshest result in the buffer.
func (s *Service) emit(res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case <-s.results:
	default:
	}
	s.results <- res
}

// Close stops pending timers, cancels any in-flight search, and closes the
// results channel.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	close(s.results)
}
