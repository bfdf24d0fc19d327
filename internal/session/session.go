package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/remiges-tech/fuzzysearch"
)

// Searcher is the part of fuzzysearch.Searcher a session needs.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]fuzzysearch.MatchResult, error)
}

// Result is delivered for the latest query only.
type Result struct {
	Generation uint64
	Query      string
	Results    []fuzzysearch.MatchResult
	Err        error
}

// Session tags each query with a generation number. A result is delivered only
// if no newer query was submitted while it ran.
type Session struct {
	ctx      context.Context
	searcher Searcher
	limit    int
	deliver  func(Result)

	debouncer *Debouncer[string]
	latest    atomic.Uint64
	dropped   atomic.Uint64
	wg        sync.WaitGroup
}

// New creates a session. deliver may be called from other goroutines but never
// concurrently with itself for the same generation.
func New(ctx context.Context, searcher Searcher, limit int, delay time.Duration, deliver func(Result)) *Session {
	s := &Session{
		ctx:      ctx,
		searcher: searcher,
		limit:    limit,
		deliver:  deliver,
	}
	s.debouncer = NewDebouncer(delay, func(query string) {
		s.Submit(query)
	})
	return s
}

// Type records a keystroke; the query is submitted once typing pauses.
func (s *Session) Type(query string) {
	s.debouncer.Call(query)
}

// Submit runs query now and returns its generation.
func (s *Session) Submit(query string) uint64 {
	gen := s.latest.Add(1)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		results, err := s.searcher.Search(s.ctx, query, s.limit)
		if s.latest.Load() != gen {
			s.dropped.Add(1)
			return
		}
		s.deliver(Result{
			Generation: gen,
			Query:      query,
			Results:    results,
			Err:        err,
		})
	}()
	return gen
}

// Current returns the generation of the latest submitted query.
func (s *Session) Current() uint64 {
	return s.latest.Load()
}

// Dropped returns how many superseded results were discarded.
func (s *Session) Dropped() uint64 {
	return s.dropped.Load()
}

// Wait blocks until all submitted searches have finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close submits a pending keystroke without waiting for the pause, stops
// debouncing and waits for running searches.
func (s *Session) Close() {
	s.debouncer.Flush()
	s.debouncer.Stop()
	s.wg.Wait()
}
