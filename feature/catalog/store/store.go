package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"game-catalog/core/txn"
	"game-catalog/feature/catalog/models"
	"game-catalog/feature/catalog/normalize"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidRecord is returned for records without an id or a name.
	ErrInvalidRecord = errors.New("invalid game record")
	// ErrNotFound is returned when no active row matches.
	ErrNotFound = errors.New("game not found")
)

// CreatedHook runs after the transaction that created or resurrected a game commits.
type CreatedHook func(ctx context.Context, appID uint64) error

// Store persists canonical game records.
type Store struct {
	db        *gorm.DB
	coord     *txn.Coordinator
	onCreated CreatedHook
	logger    *zap.Logger
}

// New creates a store. onCreated may be nil.
func New(coord *txn.Coordinator, onCreated CreatedHook, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:        coord.DB(),
		coord:     coord,
		onCreated: onCreated,
		logger:    logger.With(zap.String("component", "catalog_store")),
	}
}

// Create inserts rec unless an active row with the same id exists.
// An existing active row is left untouched and its id returned without
// scheduling any effect. A tombstoned row is overwritten and its tombstone
// cleared. On insert or resurrection the created hook is registered to run
// after commit.
func (s *Store) Create(dbc txn.Context, rec *models.Game) (uint64, error) {
	if rec == nil || rec.ID == 0 || strings.TrimSpace(rec.Name) == "" {
		return 0, ErrInvalidRecord
	}

	created := false
	err := s.coord.Run(dbc, func(tx txn.Context) error {
		db := tx.DB(s.db)

		var existing models.Game
		err := db.Select("id").Where("id = ?", rec.ID).Take(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to look up game %d: %w", rec.ID, err)
		}

		if rec.Slug == "" {
			rec.Slug = normalize.Slugify(rec.Name)
		}
		rec.TombstonedAt = gorm.DeletedAt{}

		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(models.Game{}.Columns()),
		}
		if err := db.Clauses(upsert).Create(rec).Error; err != nil {
			return fmt.Errorf("failed to upsert game %d: %w", rec.ID, err)
		}
		created = true

		if s.onCreated == nil {
			return nil
		}
		id := rec.ID
		return txn.AfterCommit(tx, func(ctx context.Context) error {
			return s.onCreated(ctx, id)
		})
	})
	if err != nil {
		return 0, err
	}

	if created {
		s.logger.Info("Game stored", zap.Uint64("app_id", rec.ID), zap.String("slug", rec.Slug))
	} else {
		s.logger.Debug("Game already active, skipping", zap.Uint64("app_id", rec.ID))
	}
	return rec.ID, nil
}

// FromID returns the active game with id, or nil when it is absent or tombstoned.
func (s *Store) FromID(dbc txn.Context, id uint64) (*models.Game, error) {
	var game models.Game
	err := dbc.DB(s.db).Where("id = ?", id).Take(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %d: %w", id, err)
	}
	return &game, nil
}

// Tombstone soft-deletes the active game with id.
func (s *Store) Tombstone(dbc txn.Context, id uint64) error {
	res := dbc.DB(s.db).Where("id = ?", id).Delete(&models.Game{})
	if res.Error != nil {
		return fmt.Errorf("failed to tombstone game %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.logger.Info("Game tombstoned", zap.Uint64("app_id", id))
	return nil
}

const (
	DefaultPageSize = 25
	MaxPageSize     = 100
)

// Page clamps a requested window to the bounds List applies.
func Page(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// List returns a page of active games ordered by id, plus the active total.
func (s *Store) List(dbc txn.Context, limit, offset int) ([]models.Game, int64, error) {
	limit, offset = Page(limit, offset)

	db := dbc.DB(s.db)
	var total int64
	if err := db.Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count games: %w", err)
	}

	games := []models.Game{}
	if err := db.Order("id").Limit(limit).Offset(offset).Find(&games).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list games: %w", err)
	}
	return games, total, nil
}
