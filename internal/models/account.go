package models

import (
	"encoding/json"
	"fmt"

	"github.com/lexazver/teamboard/internal/cryptox"
)

// SchemaVersion is the on-disk schema version for account and session blobs.
// Records with an unknown version are rejected at decode time so that
// legacy-shaped data goes through the recovery path instead of crashing.
const SchemaVersion = 1

// Account is the durable record for one user: identifiers plus the
// password-encrypted profile. Salt is generated once at signup and never
// rotated; IV is replaced on every re-encryption and must never repeat
// under the same key.
type Account struct {
	ID               string
	Email            string
	Salt             []byte
	IV               []byte
	EncryptedProfile []byte
}

// accountDTO is the stored JSON shape. Byte fields are hex strings.
type accountDTO struct {
	SchemaVersion    int    `json:"schema_version"`
	ID               string `json:"id"`
	Email            string `json:"email"`
	Salt             string `json:"salt"`
	IV               string `json:"iv"`
	EncryptedProfile string `json:"encryptedProfile"`
}

func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(accountDTO{
		SchemaVersion:    SchemaVersion,
		ID:               a.ID,
		Email:            a.Email,
		Salt:             cryptox.EncodeHex(a.Salt),
		IV:               cryptox.EncodeHex(a.IV),
		EncryptedProfile: cryptox.EncodeHex(a.EncryptedProfile),
	})
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var dto accountDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	if dto.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported account schema version: %d", dto.SchemaVersion)
	}

	salt, err := cryptox.DecodeHex(dto.Salt)
	if err != nil {
		return fmt.Errorf("malformed salt: %w", err)
	}
	iv, err := cryptox.DecodeHex(dto.IV)
	if err != nil {
		return fmt.Errorf("malformed iv: %w", err)
	}
	profile, err := cryptox.DecodeHex(dto.EncryptedProfile)
	if err != nil {
		return fmt.Errorf("malformed encrypted profile: %w", err)
	}

	a.ID = dto.ID
	a.Email = dto.Email
	a.Salt = salt
	a.IV = iv
	a.EncryptedProfile = profile
	return nil
}
