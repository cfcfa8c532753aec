package store

import (
	"context"
	"strings"
	"sync"

	"github.com/dartlinks/dart/internal/domain"
)

// MemoryStore is the in-memory Store implementation. Default backend;
// never returns domain.ErrStoreUnavailable.
//
// Records are cloned on the way in and out so callers can never alias
// internal state.
type MemoryStore struct {
	mu        sync.RWMutex
	shortcuts map[string]*domain.Shortcut // id -> shortcut
	folders   map[string]*domain.Folder   // lower(name) -> folder
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shortcuts: make(map[string]*domain.Shortcut),
		folders:   make(map[string]*domain.Folder),
	}
}

func (m *MemoryStore) GetAllShortcuts(_ context.Context) ([]*domain.Shortcut, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Shortcut, 0, len(m.shortcuts))
	for _, s := range m.shortcuts {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (m *MemoryStore) GetShortcut(_ context.Context, id string) (*domain.Shortcut, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.shortcuts[id].Clone(), nil
}

func (m *MemoryStore) PutShortcut(_ context.Context, s *domain.Shortcut) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shortcuts[s.ID] = s.Clone()
	return nil
}

func (m *MemoryStore) DeleteShortcut(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.shortcuts, id)
	return nil
}

func (m *MemoryStore) GetAllFolders(_ context.Context) ([]*domain.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Folder, 0, len(m.folders))
	for _, f := range m.folders {
		c := *f
		out = append(out, &c)
	}
	return out, nil
}

func (m *MemoryStore) GetFolder(_ context.Context, name string) (*domain.Folder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.folders[strings.ToLower(name)]
	if !ok {
		return nil, nil
	}
	c := *f
	return &c, nil
}

func (m *MemoryStore) PutFolder(_ context.Context, f *domain.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *f
	m.folders[strings.ToLower(f.Name)] = &c
	return nil
}

func (m *MemoryStore) DeleteFolder(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.folders, strings.ToLower(name))
	return nil
}
