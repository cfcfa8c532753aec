package scheduler

import (
	"context"
	"time"

	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/namespace"
)

// FolderJanitor periodically removes folder records with zero
// referencing shortcuts. Empty folders are valid state; the janitor
// just keeps them from accumulating forever.
type FolderJanitor struct {
	manager  *namespace.Manager
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewFolderJanitor creates a janitor running at the given interval.
func NewFolderJanitor(manager *namespace.Manager, log logger.Logger, interval time.Duration) *FolderJanitor {
	return &FolderJanitor{
		manager:  manager,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one immediate cleanup pass and then a periodic one until
// Stop is called or the context is cancelled.
func (j *FolderJanitor) Start(ctx context.Context) error {
	if err := j.collect(ctx); err != nil {
		j.logger.Warn("initial folder cleanup failed", logger.Error(err))
	}

	ticker := time.NewTicker(j.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := j.collect(ctx); err != nil {
					j.logger.Error("folder cleanup failed", logger.Error(err))
				}
			case <-j.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the janitor.
func (j *FolderJanitor) Stop() {
	close(j.stopCh)
}

func (j *FolderJanitor) collect(ctx context.Context) error {
	removed, err := j.manager.CleanupEmptyFolders(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logger.Info("empty folders removed", logger.Int("count", removed))
	} else {
		j.logger.Debug("no empty folders to remove")
	}
	return nil
}
