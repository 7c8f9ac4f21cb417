package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTypeaheadDebounce matches the delay the search box waits after the last keystroke
	DefaultTypeaheadDebounce = 300 * time.Millisecond

	// MinTypeaheadQueryLength is the shortest input that triggers a search
	MinTypeaheadQueryLength = 2
)

// TypeaheadResult is the outcome of one search, tagged with the input sequence it answers
type TypeaheadResult struct {
	Err   error
	Query string
	Users []*UserSummary
	Seq   uint64
}

// Typeahead runs debounced user searches for a single search box.
// Each Input supersedes the previous one: the pending timer is stopped, the
// in-flight search is cancelled, and any undelivered result is discarded.
// Only a result for the most recent input is ever placed on Results.
type Typeahead struct {
	baseCtx  context.Context
	service  UserService
	timer    *time.Timer
	cancel   context.CancelFunc
	results  chan TypeaheadResult
	debounce time.Duration
	seq      uint64
	mu       sync.Mutex
	closed   bool
}

// NewTypeahead creates a typeahead bound to ctx; cancelling ctx stops all searches
func NewTypeahead(ctx context.Context, service UserService, debounce time.Duration) *Typeahead {
	if debounce < 0 {
		debounce = 0
	}
	return &Typeahead{
		baseCtx:  ctx,
		service:  service,
		debounce: debounce,
		results:  make(chan TypeaheadResult, 1),
	}
}

// Results delivers search results. At most one result is buffered, and it is
// always for the latest input at the time it was queued.
func (t *Typeahead) Results() <-chan TypeaheadResult {
	return t.results
}

// Input records a new value of the search box and returns its sequence number
func (t *Typeahead) Input(query string) uint64 {
	query = strings.TrimSpace(query)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return t.seq
	}

	t.seq++
	seq := t.seq
	t.supersedeLocked()

	// Short inputs clear the options without touching storage
	if len([]rune(query)) < MinTypeaheadQueryLength {
		t.deliverLocked(TypeaheadResult{Query: query, Seq: seq, Users: []*UserSummary{}})
		return seq
	}

	ctx, cancel := context.WithCancel(t.baseCtx)
	t.cancel = cancel
	t.timer = time.AfterFunc(t.debounce, func() {
		t.run(ctx, seq, query)
	})
	return seq
}

// Latest returns the sequence number of the most recent input
func (t *Typeahead) Latest() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seq
}

// Close cancels any pending search and closes Results
func (t *Typeahead) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.closed = true
	t.supersedeLocked()
	close(t.results)
}

func (t *Typeahead) run(ctx context.Context, seq uint64, query string) {
	found, err := t.service.SearchUsers(ctx, query)

	t.mu.Lock()
	defer t.mu.Unlock()

	// A newer input arrived (or the box was closed) while we were searching
	if t.closed || seq != t.seq || ctx.Err() != nil {
		return
	}
	t.deliverLocked(TypeaheadResult{Query: query, Seq: seq, Users: found, Err: err})
}

// supersedeLocked stops the debounce timer, cancels the in-flight search and
// drops any result that has not been consumed yet (must be called with lock held)
func (t *Typeahead) supersedeLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	select {
	case <-t.results:
	default:
	}
}

// deliverLocked queues a result; the buffer is drained first so this never blocks
// (must be called with lock held)
func (t *Typeahead) deliverLocked(res TypeaheadResult) {
	select {
	case <-t.results:
	default:
	}
	t.results <- res
}
