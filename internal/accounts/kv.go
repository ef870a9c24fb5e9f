package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lexazver/teamboard/internal/common"
	"github.com/lexazver/teamboard/internal/cryptox"
	"github.com/lexazver/teamboard/internal/dbx"
	"github.com/lexazver/teamboard/internal/models"
	"github.com/lexazver/teamboard/internal/storage"
)

// Bootstrap credentials for the account seeded on first run. The admin is
// expected to change the password through the profile flow.
const (
	BootstrapEmail    = "lexazver@example.com"
	BootstrapPassword = "password"
)

// accountsKey is the kv slot holding the JSON-encoded account list.
const accountsKey = "accounts"

// KVRepository stores the full account list as one blob in the durable
// key-value store. Mutations run read-modify-write inside a transaction so
// two operations on the same process cannot interleave halfway.
type KVRepository struct {
	db *sql.DB
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) load(ctx context.Context, st storage.Store) ([]models.Account, error) {
	blob, err := st.Get(ctx, accountsKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var accs []models.Account
	if err := json.Unmarshal(blob, &accs); err != nil {
		return nil, fmt.Errorf("failed to decode accounts blob: %w", err)
	}
	return accs, nil
}

func (r *KVRepository) save(ctx context.Context, st storage.Store, accs []models.Account) error {
	blob, err := json.Marshal(accs)
	if err != nil {
		return fmt.Errorf("failed to encode accounts blob: %w", err)
	}
	return st.Set(ctx, accountsKey, blob)
}

// Initialize seeds the bootstrap admin account when the store is empty.
// Subsequent calls leave existing accounts untouched.
func (r *KVRepository) Initialize(ctx context.Context) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := storage.NewSQLiteStore(tx)

		accs, err := r.load(ctx, st)
		if err != nil {
			return err
		}
		if len(accs) > 0 {
			return nil
		}

		boot, err := bootstrapAccount()
		if err != nil {
			return fmt.Errorf("failed to build bootstrap account: %w", err)
		}
		return r.save(ctx, st, []models.Account{*boot})
	})
}

func bootstrapAccount() (*models.Account, error) {
	salt, err := common.GenerateRandBytes(cryptox.SaltSize)
	if err != nil {
		return nil, err
	}

	key := cryptox.DeriveKey([]byte(BootstrapPassword), salt)
	defer common.WipeBytes(key)

	profile := models.Profile{
		FirstName: "Team",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
	}
	iv, ciphertext, err := cryptox.Encrypt(key, profile)
	if err != nil {
		return nil, err
	}

	return &models.Account{
		ID:               uuid.NewString(),
		Email:            BootstrapEmail,
		Salt:             salt,
		IV:               iv,
		EncryptedProfile: ciphertext,
	}, nil
}

func (r *KVRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	accs, err := r.load(ctx, storage.NewSQLiteStore(r.db))
	if err != nil {
		return nil, err
	}
	for i := range accs {
		if accs[i].Email == email {
			acc := accs[i]
			return &acc, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *KVRepository) Insert(ctx context.Context, account *models.Account) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := storage.NewSQLiteStore(tx)

		accs, err := r.load(ctx, st)
		if err != nil {
			return err
		}
		for i := range accs {
			if accs[i].Email == account.Email {
				return common.ErrDuplicateAccount
			}
		}
		return r.save(ctx, st, append(accs, *account))
	})
}

func (r *KVRepository) Update(ctx context.Context, id string, iv, encryptedProfile []byte) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st := storage.NewSQLiteStore(tx)

		accs, err := r.load(ctx, st)
		if err != nil {
			return err
		}
		for i := range accs {
			if accs[i].ID == id {
				accs[i].IV = iv
				accs[i].EncryptedProfile = encryptedProfile
				return r.save(ctx, st, accs)
			}
		}
		return common.ErrNotFound
	})
}
