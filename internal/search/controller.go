package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/logger"
)

// Snapshot supplies the current candidate set. The ranking engine is a
// pure function; the controller is what fetches state for it.
type Snapshot func(ctx context.Context) ([]*domain.Shortcut, error)

// Result is what subscribers receive after an evaluation completes.
type Result struct {
	Query   string
	Matches []domain.Match
	Err     error
}

// Controller sits in front of the ranking engine and makes interactive
// typing cheap: keystrokes are recorded immediately but evaluation is
// deferred until the debounce window passes with no newer input. Only
// the most recent pending query ever runs; superseded ones are
// discarded, never executed.
//
// It runs a single-slot pending-request state machine
// (Idle -> Scheduled -> Evaluating -> Idle): new input while Scheduled
// resets the timer, new input while Evaluating marks the in-flight
// result as discardable via the generation counter.
type Controller struct {
	mu       sync.Mutex
	snapshot Snapshot
	logger   logger.Logger
	window   time.Duration
	cache    *resultCache

	timer      *time.Timer
	generation uint64
	// epoch advances on Invalidate; a result computed under an older
	// epoch is stale and never cached.
	epoch    uint64
	text     string
	listener func(Result)
}

// NewController creates a Controller with the given debounce window
// and result cache capacity.
func NewController(snapshot Snapshot, log logger.Logger, window time.Duration, cacheSize int) *Controller {
	if cacheSize < 1 {
		cacheSize = 1
	}
	return &Controller{
		snapshot: snapshot,
		logger:   log,
		window:   window,
		cache:    newResultCache(cacheSize),
	}
}

// Subscribe registers the listener invoked with each completed
// evaluation. Superseded evaluations never reach the listener.
func (c *Controller) Subscribe(fn func(Result)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

// Text returns the latest query text, reflecting keystrokes instantly.
func (c *Controller) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// OnQueryChanged records the new text and schedules an evaluation once
// the debounce window passes without further input. Empty input short
// circuits: the empty result is published immediately and any pending
// evaluation is cancelled.
func (c *Controller) OnQueryChanged(text string) {
	c.mu.Lock()
	c.text = text
	c.generation++
	gen := c.generation
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if strings.TrimSpace(text) == "" {
		listener := c.listener
		c.mu.Unlock()
		if listener != nil {
			listener(Result{Query: text, Matches: []domain.Match{}})
		}
		return
	}

	c.timer = time.AfterFunc(c.window, func() { c.evaluate(gen, text) })
	c.mu.Unlock()
}

// Clear resets query text and pending state, cancelling any scheduled
// evaluation. The result cache survives; it only goes away on
// candidate-set mutations.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = ""
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Invalidate drops every cached result. Must be called after any
// mutation that changes the candidate set: cached rankings are a pure
// function of a snapshot that is now stale.
func (c *Controller) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.cache.clear()
}

// Search is the synchronous path: it resolves the query immediately,
// going through the same result cache as the debounced path.
func (c *Controller) Search(ctx context.Context, query string) ([]domain.Match, error) {
	key := normalizeKey(query)

	c.mu.Lock()
	if matches, ok := c.cache.get(key); ok {
		c.mu.Unlock()
		return matches, nil
	}
	epoch := c.epoch
	c.mu.Unlock()

	matches, err := c.run(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// An invalidation while we were ranking means the snapshot is
	// already stale; serve the result but do not cache it.
	if epoch == c.epoch {
		c.cache.put(key, matches)
	}
	c.mu.Unlock()
	return matches, nil
}

// evaluate runs a debounced query. gen is the generation the timer was
// armed with; any newer input makes the evaluation (or its result)
// discardable.
func (c *Controller) evaluate(gen uint64, text string) {
	key := normalizeKey(text)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	if matches, ok := c.cache.get(key); ok {
		listener := c.listener
		c.mu.Unlock()
		if listener != nil {
			listener(Result{Query: text, Matches: matches})
		}
		return
	}
	epoch := c.epoch
	c.mu.Unlock()

	matches, err := c.run(context.Background(), text)

	c.mu.Lock()
	if gen != c.generation {
		// Superseded while evaluating; the result is stale, drop it.
		c.mu.Unlock()
		return
	}
	if err == nil && epoch == c.epoch {
		c.cache.put(key, matches)
	}
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		listener(Result{Query: text, Matches: matches, Err: err})
	}
}

// run fetches a candidate snapshot and ranks it.
func (c *Controller) run(ctx context.Context, text string) ([]domain.Match, error) {
	q := domain.ParseQuery(text)
	if q.Kind == domain.QueryEmpty {
		return []domain.Match{}, nil
	}

	candidates, err := c.snapshot(ctx)
	if err != nil {
		c.logger.Warn("search snapshot failed",
			logger.String("query", text),
			logger.Error(err))
		return nil, err
	}
	return domain.Rank(q, candidates), nil
}

func normalizeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
