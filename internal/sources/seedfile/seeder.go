package seedfile

import (
	"context"
	"errors"

	"github.com/dartlinks/dart/internal/domain"
	"github.com/dartlinks/dart/internal/logger"
	"github.com/dartlinks/dart/internal/namespace"
)

// Seeder loads a seed file and applies it through the namespace
// manager at startup. Seeding is bootstrap provisioning: entries that
// already exist or fail validation are skipped with a log line, they
// never abort startup. Only store trouble does.
type Seeder struct {
	loader  *Loader
	mapper  *Mapper
	manager *namespace.Manager
	logger  logger.Logger
}

// NewSeeder creates a Seeder for the given file path.
func NewSeeder(filePath string, manager *namespace.Manager, log logger.Logger) *Seeder {
	return &Seeder{
		loader:  NewLoader(filePath),
		mapper:  NewMapper(),
		manager: manager,
		logger:  log,
	}
}

// Apply loads the file and creates its folders and shortcuts.
// Returns the number of shortcuts created.
func (s *Seeder) Apply(ctx context.Context) (int, error) {
	f, err := s.loader.Load()
	if err != nil {
		return 0, err
	}

	for _, name := range s.mapper.MapFolders(f) {
		if err := s.manager.CreateFolder(ctx, name); err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				return 0, err
			}
			s.logger.Warn("skipping invalid seed folder",
				logger.String("name", name),
				logger.Error(err))
		}
	}

	created := 0
	for _, draft := range s.mapper.MapShortcuts(f) {
		_, err := s.manager.Create(ctx, draft)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrStoreUnavailable):
			return created, err
		case errors.Is(err, domain.ErrDuplicateAlias):
			s.logger.Debug("seed shortcut already exists",
				logger.String("full_alias", domain.FullAlias(draft.Folder, draft.Alias)))
		default:
			s.logger.Warn("skipping invalid seed shortcut",
				logger.String("full_alias", domain.FullAlias(draft.Folder, draft.Alias)),
				logger.Error(err))
		}
	}

	s.logger.Info("seed file applied",
		logger.Int("created", created),
		logger.Int("entries", len(f.Shortcuts)))
	return created, nil
}
