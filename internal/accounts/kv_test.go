package accounts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexazver/teamboard/internal/common"
	"github.com/lexazver/teamboard/internal/cryptox"
	"github.com/lexazver/teamboard/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func testAccount(t *testing.T, email, password string, profile models.Profile) *models.Account {
	t.Helper()
	salt, err := common.GenerateRandBytes(cryptox.SaltSize)
	require.NoError(t, err)

	key := cryptox.DeriveKey([]byte(password), salt)
	iv, ciphertext, err := cryptox.Encrypt(key, profile)
	require.NoError(t, err)

	return &models.Account{
		ID:               "id-" + email,
		Email:            email,
		Salt:             salt,
		IV:               iv,
		EncryptedProfile: ciphertext,
	}
}

func TestInitialize_SeedsBootstrapAdminOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(setupDB(t, "accinit"))

	require.NoError(t, repo.Initialize(ctx))

	acc, err := repo.FindByEmail(ctx, BootstrapEmail)
	require.NoError(t, err)

	// bootstrap profile must decrypt with the default password, role admin
	key := cryptox.DeriveKey([]byte(BootstrapPassword), acc.Salt)
	var profile models.Profile
	require.NoError(t, cryptox.Decrypt(key, acc.IV, acc.EncryptedProfile, &profile))
	require.Equal(t, models.RoleAdmin, profile.Role)

	// a second call must not reseed or rotate anything
	require.NoError(t, repo.Initialize(ctx))
	again, err := repo.FindByEmail(ctx, BootstrapEmail)
	require.NoError(t, err)
	require.Equal(t, acc, again)
}

func TestInitialize_DoesNotSeedNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(setupDB(t, "accnoseed"))

	existing := testAccount(t, "user@example.com", "pw1", models.Profile{Role: models.RoleCoach})
	require.NoError(t, repo.Insert(ctx, existing))

	require.NoError(t, repo.Initialize(ctx))

	_, err := repo.FindByEmail(ctx, BootstrapEmail)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo := NewKVRepository(setupDB(t, "accfind"))

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestInsert_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(setupDB(t, "accdup"))

	first := testAccount(t, "user@example.com", "pw1", models.Profile{FirstName: "A"})
	require.NoError(t, repo.Insert(ctx, first))

	second := testAccount(t, "user@example.com", "pw2", models.Profile{FirstName: "B"})
	err := repo.Insert(ctx, second)
	require.ErrorIs(t, err, common.ErrDuplicateAccount)

	// the stored record must be unchanged
	got, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, first, got)
}

func TestUpdate_ReplacesCiphertextKeepsSalt(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository(setupDB(t, "accupd"))

	acc := testAccount(t, "user@example.com", "pw1", models.Profile{FirstName: "Before"})
	require.NoError(t, repo.Insert(ctx, acc))

	key := cryptox.DeriveKey([]byte("pw1"), acc.Salt)
	newIV, newCiphertext, err := cryptox.Encrypt(key, models.Profile{FirstName: "After"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, acc.ID, newIV, newCiphertext))

	got, err := repo.FindByEmail(ctx, "user@example.com")
	require.NoError(t, err)
	require.Equal(t, acc.Salt, got.Salt)
	require.Equal(t, newIV, got.IV)
	require.Equal(t, newCiphertext, got.EncryptedProfile)
}

func TestUpdate_UnknownID(t *testing.T) {
	repo := NewKVRepository(setupDB(t, "accupdmiss"))

	err := repo.Update(context.Background(), "nope", []byte{1}, []byte{2})
	require.ErrorIs(t, err, common.ErrNotFound)
}
