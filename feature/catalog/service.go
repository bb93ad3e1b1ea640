package catalog

import (
	"context"
	"errors"
	"fmt"

	"game-catalog/core/txn"
	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/models"
	"game-catalog/feature/catalog/store"

	"go.uber.org/zap"
)

var (
	// ErrInvalidAppID is returned for a zero app id.
	ErrInvalidAppID = errors.New("invalid app id")
	// ErrNotFound is returned when no active game matches.
	ErrNotFound = errors.New("game not found")
)

// Fetcher retrieves raw provider documents.
type Fetcher interface {
	Fetch(ctx context.Context, appID uint64) (*fetch.Documents, error)
}

// Service runs the ingestion pipeline and serves stored games.
type Service struct {
	fetcher Fetcher
	store   *store.Store
	logger  *zap.Logger
}

// NewService creates a catalog service.
func NewService(fetcher Fetcher, st *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fetcher: fetcher, store: st, logger: logger}
}

// Ingest fetches, assembles and stores the game, returning the stored record.
// Asset discovery runs once the create transaction commits.
func (s *Service) Ingest(ctx context.Context, appID uint64) (*models.Game, error) {
	if appID == 0 {
		return nil, ErrInvalidAppID
	}

	docs, err := s.fetcher.Fetch(ctx, appID)
	if err != nil {
		return nil, err
	}

	rec, err := Assemble(docs)
	if err != nil {
		return nil, fmt.Errorf("assemble game %d: %w", appID, err)
	}

	id, err := s.store.Create(txn.Background(ctx), rec)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Game ingested",
		zap.Uint64("app_id", id),
		zap.String("name", rec.Name),
		zap.Bool("has_tags", docs.Tags != nil),
		zap.Bool("has_detail", docs.Detail != nil),
	)
	return s.Get(ctx, id)
}

// Get returns the active game or ErrNotFound.
func (s *Service) Get(ctx context.Context, appID uint64) (*models.Game, error) {
	if appID == 0 {
		return nil, ErrInvalidAppID
	}
	game, err := s.store.FromID(txn.Background(ctx), appID)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, ErrNotFound
	}
	return game, nil
}

// List returns a page of active games and the active total.
func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Game, int64, error) {
	return s.store.List(txn.Background(ctx), limit, offset)
}

// Tombstone soft-deletes the game. A later ingest resurrects it.
func (s *Service) Tombstone(ctx context.Context, appID uint64) error {
	if appID == 0 {
		return ErrInvalidAppID
	}
	err := s.store.Tombstone(txn.Background(ctx), appID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
