// Package accounts implements the credential store: the durable mapping
// from email to encrypted account records, persisted as a single JSON blob
// in the key-value store.
package accounts

import (
	"context"

	"github.com/lexazver/teamboard/internal/models"
)

// Repository defines the credential store operations.
//
// Contract:
//   - Initialize: idempotent; seeds the bootstrap admin on an empty store.
//   - FindByEmail: returns common.ErrNotFound when no account matches.
//   - Insert: returns common.ErrDuplicateAccount on an existing email.
//   - Update: replaces IV and ciphertext for an existing account; the salt
//     is immutable once set.
type Repository interface {
	Initialize(ctx context.Context) error
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	Insert(ctx context.Context, account *models.Account) error
	Update(ctx context.Context, id string, iv, encryptedProfile []byte) error
}
