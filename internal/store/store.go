package store

import (
	"context"

	"github.com/dartlinks/dart/internal/domain"
)

// Store is the record store collaborator: the sole source of truth for
// shortcuts and folders. The core never caches authoritative state
// itself.
//
// Lookup misses return (nil, nil); errors are reserved for store
// failures, which implementations wrap in domain.ErrStoreUnavailable.
// Folder lookups are case-insensitive on the folder name.
type Store interface {
	GetAllShortcuts(ctx context.Context) ([]*domain.Shortcut, error)
	GetShortcut(ctx context.Context, id string) (*domain.Shortcut, error)
	PutShortcut(ctx context.Context, s *domain.Shortcut) error
	DeleteShortcut(ctx context.Context, id string) error

	GetAllFolders(ctx context.Context) ([]*domain.Folder, error)
	GetFolder(ctx context.Context, name string) (*domain.Folder, error)
	PutFolder(ctx context.Context, f *domain.Folder) error
	DeleteFolder(ctx context.Context, name string) error
}
