package txn

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type row struct {
	ID   uint `gorm:"primaryKey"`
	Name string
}

func setupDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&row{}))
	return db
}

func TestRun_CommitRunsEffectsInOrder(t *testing.T) {
	db := setupDB(t)
	c := NewCoordinator(db, nil)

	var order []int
	var committedDuringEffect int64
	err := c.Run(Background(context.Background()), func(dbc Context) error {
		if err := dbc.Tx.Create(&row{Name: "a"}).Error; err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			i := i
			require.NoError(t, AfterCommit(dbc, func(ctx context.Context) error {
				order = append(order, i)
				db.Model(&row{}).Count(&committedDuringEffect)
				return nil
			}))
		}
		assert.Empty(t, order)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, int64(1), committedDuringEffect)
}

func TestRun_RollbackSkipsEffects(t *testing.T) {
	db := setupDB(t)
	c := NewCoordinator(db, nil)

	ran := false
	boom := errors.New("boom")
	err := c.Run(Background(context.Background()), func(dbc Context) error {
		_ = AfterCommit(dbc, func(ctx context.Context) error {
			ran = true
			return nil
		})
		dbc.Tx.Create(&row{Name: "lost"})
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)

	var count int64
	db.Model(&row{}).Count(&count)
	assert.Zero(t, count)
}

func TestRun_NestedJoinsOuter(t *testing.T) {
	db := setupDB(t)
	c := NewCoordinator(db, nil)

	calls := 0
	err := c.Run(Background(context.Background()), func(outer Context) error {
		return c.Run(outer, func(inner Context) error {
			assert.Same(t, outer.Tx, inner.Tx)
			return AfterCommit(inner, func(ctx context.Context) error {
				calls++
				return nil
			})
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRun_NestedFailureRollsBackOuter(t *testing.T) {
	db := setupDB(t)
	c := NewCoordinator(db, nil)

	ran := false
	err := c.Run(Background(context.Background()), func(outer Context) error {
		_ = AfterCommit(outer, func(ctx context.Context) error {
			ran = true
			return nil
		})
		return c.Run(outer, func(inner Context) error {
			return errors.New("inner failed")
		})
	})
	assert.Error(t, err)
	assert.False(t, ran)
}

func TestRun_UnmanagedTx(t *testing.T) {
	db := setupDB(t)
	c := NewCoordinator(db, nil)

	err := c.Run(Context{Ctx: context.Background(), Tx: db}, func(Context) error { return nil })
	assert.ErrorIs(t, err, ErrUnmanagedTx)
}

func TestRun_EffectErrorIsLogged(t *testing.T) {
	db := setupDB(t)
	core, logs := observer.New(zap.ErrorLevel)
	c := NewCoordinator(db, zap.New(core))

	second := false
	err := c.Run(Background(context.Background()), func(dbc Context) error {
		_ = AfterCommit(dbc, func(ctx context.Context) error { return errors.New("publish failed") })
		_ = AfterCommit(dbc, func(ctx context.Context) error {
			second = true
			return nil
		})
		return nil
	})

	require.NoError(t, err)
	assert.True(t, second)
	assert.Equal(t, 1, logs.FilterMessage("After-commit effect failed").Len())
}

func TestAfterCommit_OutsideTransactionRunsImmediately(t *testing.T) {
	ran := false
	err := AfterCommit(Background(context.Background()), func(ctx context.Context) error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)

	boom := errors.New("boom")
	assert.ErrorIs(t, AfterCommit(Context{}, func(ctx context.Context) error { return boom }), boom)
}
