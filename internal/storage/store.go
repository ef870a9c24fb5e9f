// Package storage provides the key-value blob stores backing the credential
// store and the session manager: a minimal Store interface and a SQLite
// implementation with a goose-managed schema.
//
// Two physical stores exist at runtime. The durable one holds the encrypted
// account records and survives restarts. The session-scoped one lives in a
// location wiped between OS sessions, which is what limits a recovered
// login to the current session.
package storage

import "context"

// Store is a key-value blob store. Get returns common.ErrNotFound when the
// key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
