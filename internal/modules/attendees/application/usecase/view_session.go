package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"passInWeb/internal/modules/attendees/domain"
)

// ErrSuperseded is returned to callers whose fetch finished after a newer one
// had been issued. Their response is discarded.
var ErrSuperseded = errors.New("view fetch superseded")

// ViewObserver receives every state a session applies. Observers run with the
// session locked and must not call back into it.
type ViewObserver func(domain.ViewState)

// ViewSession is the state of one live attendee list. Every query change is
// staged with a sequence number; only the latest staged fetch may write the
// state, and the previous in-flight fetch is cancelled.
type ViewSession struct {
	id     string
	loader PageLoader

	mu        sync.Mutex
	state     domain.ViewState
	seq       uint64
	cancel    context.CancelFunc
	observers []ViewObserver
}

func NewViewSession(id string, query domain.PageQuery, loader PageLoader) *ViewSession {
	return &ViewSession{
		id:     id,
		loader: loader,
		state:  domain.NewViewState(query),
	}
}

func (s *ViewSession) ID() string { return s.id }

// State returns a copy of the current state.
func (s *ViewSession) State() domain.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// OnChange registers an observer.
func (s *ViewSession) OnChange(fn ViewObserver) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Transition derives the next query from the current state.
type Transition func(domain.ViewState) domain.PageQuery

// ToSearch applies a new search and resets the page to 1 in the same step.
func ToSearch(search string) Transition {
	return func(state domain.ViewState) domain.PageQuery { return state.Query.WithSearch(search) }
}

func ToPage(page int) Transition {
	return func(state domain.ViewState) domain.PageQuery { return state.Query.WithPage(page) }
}

func ToFirst() Transition { return ToPage(1) }

func ToPrevious() Transition {
	return func(state domain.ViewState) domain.PageQuery { return state.Query.WithPage(state.Query.Page - 1) }
}

func ToNext() Transition {
	return func(state domain.ViewState) domain.PageQuery { return state.Query.WithPage(state.Query.Page + 1) }
}

// ToLast targets the last page known when the transition is staged.
func ToLast() Transition {
	return func(state domain.ViewState) domain.PageQuery { return state.Query.WithPage(state.TotalPages()) }
}

// Reload keeps the current query.
func Reload() Transition {
	return func(state domain.ViewState) domain.PageQuery { return state.Query }
}

// PendingFetch is a staged transition waiting for its fetch. Staging takes the
// session lock, so transitions staged from one goroutine keep their order even
// when the fetches run concurrently.
type PendingFetch struct {
	session     *ViewSession
	seq         uint64
	query       domain.PageQuery
	staged      context.Context
	cancel      context.CancelFunc
	followClamp bool
}

// Stage applies t to the query, bumps the sequence and cancels the previous
// in-flight fetch. The returned fetch must be run to update the state.
func (s *ViewSession) Stage(t Transition) *PendingFetch {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Query = t(s.state.Clone()).Normalize()
	return s.stageLocked(true)
}

func (s *ViewSession) stageLocked(followClamp bool) *PendingFetch {
	s.seq++
	if s.cancel != nil {
		s.cancel()
	}
	staged, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	return &PendingFetch{
		session:     s,
		seq:         s.seq,
		query:       s.state.Query,
		staged:      staged,
		cancel:      cancel,
		followClamp: followClamp,
	}
}

// Run fetches the staged query and applies the response if no newer fetch was
// staged meanwhile. A clamped page is refetched once.
func (p *PendingFetch) Run(ctx context.Context) (domain.ViewState, error) {
	s := p.session
	if state, stale := s.superseded(p.seq); stale {
		p.cancel()
		return state, ErrSuperseded
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(p.staged, cancel)
	defer stop()

	page, err := s.loader.Execute(fetchCtx, p.query)

	s.mu.Lock()
	if p.seq != s.seq {
		latest := s.seq
		state := s.state.Clone()
		s.mu.Unlock()
		p.cancel()
		slog.Debug("live view fetch discarded", slog.String("sessionId", s.id), slog.Uint64("seq", p.seq), slog.Uint64("latest", latest))
		return state, ErrSuperseded
	}
	p.cancel()
	s.cancel = nil

	if err != nil {
		s.state.ApplyFailure()
	} else if clamped := s.state.ApplyPage(*page); clamped && p.followClamp {
		slog.Info("live view page clamped", slog.String("sessionId", s.id), slog.Int("page", s.state.Query.Page), slog.Int("totalPages", s.state.TotalPages()))
		next := s.stageLocked(false)
		s.mu.Unlock()
		return next.Run(ctx)
	}

	state := s.state.Clone()
	for _, observer := range s.observers {
		observer(state)
	}
	s.mu.Unlock()
	return state, err
}

func (s *ViewSession) superseded(seq uint64) (domain.ViewState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq {
		return domain.ViewState{}, false
	}
	return s.state.Clone(), true
}

// SetSearch applies a new search and resets the page to 1 in the same step.
func (s *ViewSession) SetSearch(ctx context.Context, search string) (domain.ViewState, error) {
	return s.Stage(ToSearch(search)).Run(ctx)
}

func (s *ViewSession) SetPage(ctx context.Context, page int) (domain.ViewState, error) {
	return s.Stage(ToPage(page)).Run(ctx)
}

func (s *ViewSession) First(ctx context.Context) (domain.ViewState, error) {
	return s.Stage(ToFirst()).Run(ctx)
}

func (s *ViewSession) Previous(ctx context.Context) (domain.ViewState, error) {
	return s.Stage(ToPrevious()).Run(ctx)
}

func (s *ViewSession) Next(ctx context.Context) (domain.ViewState, error) {
	return s.Stage(ToNext()).Run(ctx)
}

func (s *ViewSession) Last(ctx context.Context) (domain.ViewState, error) {
	return s.Stage(ToLast()).Run(ctx)
}

// Refresh re-fetches the current query.
func (s *ViewSession) Refresh(ctx context.Context) (domain.ViewState, error) {
	return s.Stage(Reload()).Run(ctx)
}

// Close cancels any in-flight fetch.
func (s *ViewSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
