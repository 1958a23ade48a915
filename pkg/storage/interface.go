// Package storage defines the persistence interfaces the application relies
// on. It abstracts scan history storage and transaction management so that
// different backends (e.g. PostgreSQL) can provide concrete implementations.
package storage

import "context"

// AllStorage is a composite interface that includes all domain-specific
// storage capabilities required by the application.
type AllStorage interface {
	ScanStorage
	JobStorage
}

// TxStorage describes a storage handle bound to a database transaction. It
// exposes the same capabilities as AllStorage plus commit and rollback.
// Implementations become unusable after Commit or Rollback is called.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage describes a non-transactional storage handle with the ability to
// start transactions.
type Storage interface {
	AllStorage

	// Close releases any resources held by the storage implementation, such as
	// the underlying connection pool. After Close, the instance should not be
	// used.
	Close() error

	// Begin starts a new transaction and returns a TxStorage scoped to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx begins a transaction, invokes the callback with a transactional
	// handle, and commits on success or rolls back when the callback errors.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
