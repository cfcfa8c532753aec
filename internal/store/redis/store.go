package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store is the Redis-backed record store. Records are stored as JSON
// values with membership sets for enumeration. Records never expire:
// the store is authoritative, not a cache.
//
// Misses return (nil, nil); every transport failure is wrapped in
// domain.ErrStoreUnavailable so callers can tell retryable store
// trouble from caller-input errors.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) GetAllShortcuts(ctx context.Context) ([]*domain.Shortcut, error) {
	ids, err := s.client.SMembers(ctx, KeyAllShortcuts).Result()
	if err != nil {
		return nil, unavailable("list shortcut ids", err)
	}

	out := make([]*domain.Shortcut, 0, len(ids))
	for _, id := range ids {
		sc, err := s.GetShortcut(ctx, id)
		if err != nil {
			return nil, err
		}
		if sc == nil {
			// Set member without a record; skip, the set is repaired
			// on the next delete.
			continue
		}
		out = append(out, sc)
	}
	return out, nil
}

func (s *Store) GetShortcut(ctx context.Context, id string) (*domain.Shortcut, error) {
	data, err := s.client.Get(ctx, ShortcutKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, unavailable("get shortcut", err)
	}

	var sc domain.Shortcut
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, unavailable("decode shortcut", err)
	}
	return &sc, nil
}

func (s *Store) PutShortcut(ctx context.Context, sc *domain.Shortcut) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return unavailable("encode shortcut", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ShortcutKey(sc.ID), data, 0)
	pipe.SAdd(ctx, KeyAllShortcuts, sc.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("put shortcut", err)
	}
	return nil
}

func (s *Store) DeleteShortcut(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, ShortcutKey(id))
	pipe.SRem(ctx, KeyAllShortcuts, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("delete shortcut", err)
	}
	return nil
}

func (s *Store) GetAllFolders(ctx context.Context) ([]*domain.Folder, error) {
	names, err := s.client.SMembers(ctx, KeyAllFolders).Result()
	if err != nil {
		return nil, unavailable("list folder names", err)
	}

	out := make([]*domain.Folder, 0, len(names))
	for _, name := range names {
		f, err := s.GetFolder(ctx, name)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *Store) GetFolder(ctx context.Context, name string) (*domain.Folder, error) {
	data, err := s.client.Get(ctx, FolderKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, unavailable("get folder", err)
	}

	var f domain.Folder
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, unavailable("decode folder", err)
	}
	return &f, nil
}

func (s *Store) PutFolder(ctx context.Context, f *domain.Folder) error {
	data, err := json.Marshal(f)
	if err != nil {
		return unavailable("encode folder", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, FolderKey(f.Name), data, 0)
	pipe.SAdd(ctx, KeyAllFolders, strings.ToLower(f.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("put folder", err)
	}
	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, FolderKey(name))
	pipe.SRem(ctx, KeyAllFolders, strings.ToLower(name))
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("delete folder", err)
	}
	return nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
