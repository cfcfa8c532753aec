package tracker

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/namespace"
	"github.com/dartlinks/dart/internal/store"
)

// Tracker is the sole writer of AccessCount and LastAccessedAt. It
// feeds the frequent/favorites view shown for empty queries; it plays
// no part in relevance tiering.
//
// Access writes go through the namespace manager's lock: a full-record
// write racing an alias or folder change would otherwise put stale
// identity fields back into the store.
type Tracker struct {
	store  store.Store
	ns     *namespace.Manager
	logger logger.Logger
	now    func() time.Time
}

// New creates a Tracker.
func New(s store.Store, ns *namespace.Manager, log logger.Logger) *Tracker {
	return &Tracker{store: s, ns: ns, logger: log, now: time.Now}
}

// RecordAccess increments the access counter and moves LastAccessedAt
// forward. LastAccessedAt never moves backwards.
func (t *Tracker) RecordAccess(ctx context.Context, id string) (*domain.Shortcut, error) {
	s, err := t.ns.TouchShortcut(ctx, id, func(s *domain.Shortcut) {
		s.AccessCount++
		if now := t.now(); now.After(s.LastAccessedAt) {
			s.LastAccessedAt = now
		}
	})
	if err != nil {
		return nil, err
	}
	t.logger.Debug("access recorded",
		logger.String("id", id),
		logger.Int64("count", s.AccessCount))
	return s, nil
}

// TopFrequent returns the n most accessed shortcuts. Ties break on
// more recent last access, then full alias ascending.
func (t *Tracker) TopFrequent(ctx context.Context, n int) ([]*domain.Shortcut, error) {
	if n <= 0 {
		return []*domain.Shortcut{}, nil
	}

	all, err := t.store.GetAllShortcuts(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.AccessCount != b.AccessCount {
			return a.AccessCount > b.AccessCount
		}
		if !a.LastAccessedAt.Equal(b.LastAccessedAt) {
			return a.LastAccessedAt.After(b.LastAccessedAt)
		}
		return strings.ToLower(a.FullAlias()) < strings.ToLower(b.FullAlias())
	})

	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}
