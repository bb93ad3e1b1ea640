package txn

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnmanagedTx is returned when a Context carries a transaction that was not
// opened by a Coordinator, so there is no commit to hang effects on.
var ErrUnmanagedTx = errors.New("transaction not opened by coordinator")

// Effect is work deferred until the surrounding transaction commits.
type Effect func(ctx context.Context) error

// Context bundles a request context with an optional open transaction.
// The zero value (or one with only Ctx set) means no transaction is open.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB

	scope *scope
}

// Background returns a Context with no open transaction.
func Background(ctx context.Context) Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return Context{Ctx: ctx}
}

// InTx reports whether the context carries an open coordinator transaction.
func (c Context) InTx() bool {
	return c.Tx != nil && c.scope != nil
}

// DB returns the handle queries should run on: the open transaction when
// present, otherwise fallback bound to the request context.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	ctx := c.context()
	if c.Tx != nil {
		return c.Tx.WithContext(ctx)
	}
	return fallback.WithContext(ctx)
}

func (c Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

type scope struct {
	mu      sync.Mutex
	effects []Effect
}

func (s *scope) add(e Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects = append(s.effects, e)
}

func (s *scope) drain() []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.effects
	s.effects = nil
	return out
}

// Coordinator opens transactions and runs their effects after commit.
type Coordinator struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCoordinator creates a coordinator over the given database handle.
func NewCoordinator(db *gorm.DB, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{db: db, logger: logger.With(zap.String("component", "txn"))}
}

// DB returns the underlying database handle.
func (c *Coordinator) DB() *gorm.DB {
	return c.db
}

// Run executes body inside a transaction.
// When dbc already carries an open transaction, body joins it and effects stay
// pending on the outer scope. Otherwise a new transaction is opened; on commit
// every registered effect runs in registration order, on rollback none does.
func (c *Coordinator) Run(dbc Context, body func(Context) error) error {
	if dbc.InTx() {
		return body(dbc)
	}
	if dbc.Tx != nil {
		return ErrUnmanagedTx
	}

	ctx := dbc.context()
	s := &scope{}
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return body(Context{Ctx: ctx, Tx: tx, scope: s})
	})
	if err != nil {
		s.drain()
		return err
	}

	c.flush(ctx, s.drain())
	return nil
}

func (c *Coordinator) flush(ctx context.Context, effects []Effect) {
	for i, effect := range effects {
		if err := effect(ctx); err != nil {
			c.logger.Error("After-commit effect failed",
				zap.Int("index", i),
				zap.Int("total", len(effects)),
				zap.Error(err),
			)
		}
	}
}

// AfterCommit defers effect until the open transaction in dbc commits.
// Outside a transaction the effect runs immediately and its error is returned.
func AfterCommit(dbc Context, effect Effect) error {
	if effect == nil {
		return nil
	}
	if dbc.InTx() {
		dbc.scope.add(effect)
		return nil
	}
	return effect(dbc.context())
}
