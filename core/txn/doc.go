// Package txn coordinates database transactions with deferred side effects.
//
// A Context is passed explicitly through the call chain. It carries the request
// context and, while a transaction is open, the gorm transaction handle plus
// the list of effects registered against it. Repositories pick their handle
// with dbc.DB(db), so the same code runs inside or outside a transaction.
//
// # Semantics
//
//   - Coordinator.Run joins the transaction already open in the Context, or
//     opens a new one. Only the outermost Run commits.
//   - AfterCommit appends an effect to the open transaction. Effects run after
//     commit, in registration order, exactly once. A rollback discards them.
//   - AfterCommit outside any transaction runs the effect immediately.
//   - Effect errors are logged. The committed caller never sees them.
//
// # Usage
//
//	err := coord.Run(txn.Background(ctx), func(dbc txn.Context) error {
//	    if err := dbc.Tx.Create(&rec).Error; err != nil {
//	        return err
//	    }
//	    return txn.AfterCommit(dbc, func(ctx context.Context) error {
//	        return publish(ctx, rec.ID)
//	    })
//	})
package txn
