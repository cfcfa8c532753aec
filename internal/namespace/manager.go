package namespace

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/store"
)

// Manager owns the (folder, alias) uniqueness invariant. Every
// mutation goes through it, serialized by one mutex, and is verified
// against an explicit composite-key index rebuilt from the record
// store at startup.
//
// Aliases and folders keep the casing the user typed; the index and
// all checks use domain.CompositeKey, so uniqueness is
// case-insensitive.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger logger.Logger

	now   func() time.Time
	newID func() string

	// keys maps composite key -> shortcut ID. The single choke point
	// for uniqueness; never consulted or mutated outside the lock.
	keys map[string]string

	onMutate []func()
}

// New creates a Manager. Call Rebuild before serving traffic.
func New(s store.Store, log logger.Logger) *Manager {
	return &Manager{
		store:  s,
		logger: log,
		now:    time.Now,
		newID:  uuid.NewString,
		keys:   make(map[string]string),
	}
}

// OnMutation registers a hook invoked after every mutation that
// changes the candidate set (create, update, delete, folder rename).
// Used to invalidate cached query results.
func (m *Manager) OnMutation(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onMutate = append(m.onMutate, fn)
}

// Rebuild scans the record store and reconstructs the composite-key
// index.
func (m *Manager) Rebuild(ctx context.Context) error {
	shortcuts, err := m.store.GetAllShortcuts(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys = make(map[string]string, len(shortcuts))
	for _, s := range shortcuts {
		m.keys[s.Key()] = s.ID
	}
	m.logger.Info("namespace index rebuilt", logger.Int("shortcuts", len(shortcuts)))
	return nil
}

// Create validates a draft, checks uniqueness and persists the new
// shortcut. The folder is created implicitly on first reference.
func (m *Manager) Create(ctx context.Context, draft domain.Draft) (*domain.Shortcut, error) {
	if err := domain.ValidateURL(draft.URL); err != nil {
		return nil, err
	}
	if _, err := domain.ValidateAlias(draft.Alias); err != nil {
		return nil, err
	}
	if _, err := domain.ValidateFolder(draft.Folder); err != nil {
		return nil, err
	}
	tags, err := domain.NormalizeTags(draft.Tags)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := domain.CompositeKey(draft.Folder, draft.Alias)
	if _, taken := m.keys[key]; taken {
		return nil, &domain.DuplicateAliasError{FullAlias: domain.FullAlias(draft.Folder, draft.Alias)}
	}

	now := m.now()
	s := &domain.Shortcut{
		ID:        m.newID(),
		Alias:     draft.Alias,
		Folder:    draft.Folder,
		URL:       draft.URL,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := m.ensureFolder(ctx, s.Folder); err != nil {
		return nil, err
	}
	if err := m.store.PutShortcut(ctx, s); err != nil {
		return nil, err
	}
	m.keys[key] = s.ID

	m.logger.Info("shortcut created",
		logger.String("id", s.ID),
		logger.String("full_alias", s.FullAlias()))
	m.notify()
	return s.Clone(), nil
}

// Update merges a patch into an existing shortcut, re-validates and
// re-checks uniqueness when the identity fields change.
func (m *Manager) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Shortcut, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.store.GetShortcut(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: shortcut %s", domain.ErrNotFound, id)
	}

	merged := current.Clone()
	if patch.URL != nil {
		merged.URL = *patch.URL
	}
	if patch.Alias != nil {
		merged.Alias = *patch.Alias
	}
	if patch.Folder != nil {
		merged.Folder = *patch.Folder
	}
	if patch.Tags != nil {
		tags, err := domain.NormalizeTags(*patch.Tags)
		if err != nil {
			return nil, err
		}
		merged.Tags = tags
	}

	if err := domain.ValidateURL(merged.URL); err != nil {
		return nil, err
	}
	if _, err := domain.ValidateAlias(merged.Alias); err != nil {
		return nil, err
	}
	if _, err := domain.ValidateFolder(merged.Folder); err != nil {
		return nil, err
	}

	oldKey, newKey := current.Key(), merged.Key()
	if newKey != oldKey {
		if owner, taken := m.keys[newKey]; taken && owner != id {
			return nil, &domain.DuplicateAliasError{FullAlias: merged.FullAlias()}
		}
	}

	merged.UpdatedAt = m.now()
	if _, err := m.ensureFolder(ctx, merged.Folder); err != nil {
		return nil, err
	}
	if err := m.store.PutShortcut(ctx, merged); err != nil {
		return nil, err
	}
	if newKey != oldKey {
		delete(m.keys, oldKey)
		m.keys[newKey] = id
	}

	m.logger.Info("shortcut updated",
		logger.String("id", id),
		logger.String("full_alias", merged.FullAlias()))
	m.notify()
	return merged.Clone(), nil
}

// Delete removes a shortcut. Folder cleanup is a separate, explicit
// operation (CleanupEmptyFolders); delete never cascades.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.store.GetShortcut(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("%w: shortcut %s", domain.ErrNotFound, id)
	}

	if err := m.store.DeleteShortcut(ctx, id); err != nil {
		return err
	}
	delete(m.keys, current.Key())

	m.logger.Info("shortcut deleted",
		logger.String("id", id),
		logger.String("full_alias", current.FullAlias()))
	m.notify()
	return nil
}

// TouchShortcut applies an in-place mutation to one shortcut under the
// same lock as every other namespace mutation, so the write can never
// carry fields a concurrent Update or RenameFolder already changed.
// fn must leave the identity fields (Alias, Folder) untouched; the
// composite-key index is not consulted and mutation hooks do not fire.
func (m *Manager) TouchShortcut(ctx context.Context, id string, fn func(*domain.Shortcut)) (*domain.Shortcut, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.store.GetShortcut(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: shortcut %s", domain.ErrNotFound, id)
	}

	fn(current)
	if err := m.store.PutShortcut(ctx, current); err != nil {
		return nil, err
	}
	return current.Clone(), nil
}

// Resolve looks a shortcut up by its full alias ("folder/alias" or
// just "alias"), case-insensitively.
func (m *Manager) Resolve(ctx context.Context, fullAlias string) (*domain.Shortcut, error) {
	key := strings.ToLower(strings.TrimSpace(fullAlias))

	m.mu.Lock()
	id, ok := m.keys[key]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: alias %q", domain.ErrNotFound, fullAlias)
	}
	s, err := m.store.GetShortcut(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("%w: alias %q", domain.ErrNotFound, fullAlias)
	}
	return s, nil
}

// RenameFolder moves every shortcut in oldName into newName. The whole
// rename is checked for collisions before any shortcut is mutated: on
// conflict nothing moves, and a store failure mid-move restores the
// shortcuts already moved. Case-insensitively equal names are a no-op.
// Returns the number of shortcuts moved.
func (m *Manager) RenameFolder(ctx context.Context, oldName, newName string) (int, error) {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if strings.EqualFold(oldName, newName) {
		return 0, nil
	}
	if _, err := domain.ValidateFolder(newName); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.store.GetAllShortcuts(ctx)
	if err != nil {
		return 0, err
	}

	var moving []*domain.Shortcut
	for _, s := range all {
		if s.Folder != "" && strings.EqualFold(s.Folder, oldName) {
			moving = append(moving, s)
		}
	}
	if len(moving) == 0 {
		return 0, nil
	}

	// Full collision check before anything moves. Movers cannot
	// collide with each other (aliases are unique within oldName), so
	// any occupied target key is a genuine conflict.
	for _, s := range moving {
		targetKey := domain.CompositeKey(newName, s.Alias)
		if _, taken := m.keys[targetKey]; taken {
			return 0, &domain.FolderRenameConflictError{
				OldName:   oldName,
				NewName:   newName,
				FullAlias: domain.FullAlias(newName, s.Alias),
			}
		}
	}

	createdFolder, err := m.ensureFolder(ctx, newName)
	if err != nil {
		return 0, err
	}

	now := m.now()
	moved := make([]*domain.Shortcut, 0, len(moving))
	for _, s := range moving {
		oldKey := s.Key()
		s.Folder = newName
		s.UpdatedAt = now
		if err := m.store.PutShortcut(ctx, s); err != nil {
			m.unwindMoves(ctx, moved, oldName)
			if createdFolder {
				_ = m.store.DeleteFolder(ctx, newName)
			}
			return 0, err
		}
		delete(m.keys, oldKey)
		m.keys[s.Key()] = s.ID
		moved = append(moved, s)
	}

	// The old folder record is gone along with its name.
	if err := m.store.DeleteFolder(ctx, oldName); err != nil {
		return 0, err
	}

	m.logger.Info("folder renamed",
		logger.String("old", oldName),
		logger.String("new", newName),
		logger.Int("moved", len(moving)))
	m.notify()
	return len(moving), nil
}

// unwindMoves restores already-moved shortcuts to oldName after a
// rename aborts mid-move. Caller holds the lock. A record that cannot
// be restored keeps its index entry where the store last accepted it,
// so the index stays consistent either way.
func (m *Manager) unwindMoves(ctx context.Context, moved []*domain.Shortcut, oldName string) {
	for _, s := range moved {
		movedKey := s.Key()
		restored := s.Clone()
		restored.Folder = oldName
		if err := m.store.PutShortcut(ctx, restored); err != nil {
			m.logger.Error("failed to restore shortcut after aborted rename",
				logger.String("id", s.ID),
				logger.String("full_alias", s.FullAlias()),
				logger.Error(err))
			continue
		}
		delete(m.keys, movedKey)
		m.keys[restored.Key()] = s.ID
	}
}

// CreateFolder explicitly creates a folder record. Creating a folder
// that already exists (case-insensitively) is a no-op.
func (m *Manager) CreateFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty folder name", domain.ErrInvalidFolder)
	}
	if _, err := domain.ValidateFolder(name); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	_, err := m.ensureFolder(ctx, name)
	return err
}

// DeleteFolder removes an empty folder record. Deleting a folder that
// still has shortcuts fails with ErrFolderNotEmpty.
func (m *Manager) DeleteFolder(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: cannot delete the root folder", domain.ErrInvalidFolder)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.store.GetAllShortcuts(ctx)
	if err != nil {
		return err
	}
	for _, s := range all {
		if strings.EqualFold(s.Folder, name) {
			return fmt.Errorf("%w: folder %q", domain.ErrFolderNotEmpty, name)
		}
	}

	f, err := m.store.GetFolder(ctx, name)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%w: folder %q", domain.ErrNotFound, name)
	}

	if err := m.store.DeleteFolder(ctx, name); err != nil {
		return err
	}
	m.logger.Info("folder deleted", logger.String("name", name))
	return nil
}

// CleanupEmptyFolders deletes every folder record with zero
// referencing shortcuts and reports the count removed. Idempotent.
func (m *Manager) CleanupEmptyFolders(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	folders, err := m.store.GetAllFolders(ctx)
	if err != nil {
		return 0, err
	}
	shortcuts, err := m.store.GetAllShortcuts(ctx)
	if err != nil {
		return 0, err
	}

	refs := make(map[string]int, len(folders))
	for _, s := range shortcuts {
		if s.Folder != "" {
			refs[strings.ToLower(s.Folder)]++
		}
	}

	removed := 0
	for _, f := range folders {
		if refs[strings.ToLower(f.Name)] > 0 {
			continue
		}
		if err := m.store.DeleteFolder(ctx, f.Name); err != nil {
			return removed, err
		}
		m.logger.Debug("removed empty folder", logger.String("name", f.Name))
		removed++
	}
	return removed, nil
}

// ensureFolder creates the folder record on first reference and
// reports whether this call created it. Caller holds the lock.
func (m *Manager) ensureFolder(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	f, err := m.store.GetFolder(ctx, name)
	if err != nil {
		return false, err
	}
	if f != nil {
		return false, nil
	}
	if err := m.store.PutFolder(ctx, &domain.Folder{Name: name, CreatedAt: m.now()}); err != nil {
		return false, err
	}
	return true, nil
}

// notify runs the mutation hooks. Caller holds the lock; hooks must
// not call back into the manager.
func (m *Manager) notify() {
	for _, fn := range m.onMutate {
		fn()
	}
}
