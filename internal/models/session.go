package models

import (
	"encoding/json"
	"fmt"

	"github.com/lexazver/teamboard/internal/cryptox"
)

// Session is the single-slot record that lets a signed-in user be
// rehydrated without re-entering credentials. It always carries the
// key-derivation material matching the account record at the time of the
// last read or write.
//
// The plaintext password is stored on purpose: with no server-held token,
// it is the only way to re-derive the symmetric key on the next start.
// This is a known weakness of the architecture, kept for fidelity with the
// original behavior (see DESIGN.md).
type Session struct {
	ID               string
	Email            string
	Password         string
	Salt             []byte
	IV               []byte
	EncryptedProfile []byte
}

type sessionDTO struct {
	SchemaVersion    int    `json:"schema_version"`
	ID               string `json:"id"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Salt             string `json:"salt"`
	IV               string `json:"iv"`
	EncryptedProfile string `json:"encryptedProfile"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionDTO{
		SchemaVersion:    SchemaVersion,
		ID:               s.ID,
		Email:            s.Email,
		Password:         s.Password,
		Salt:             cryptox.EncodeHex(s.Salt),
		IV:               cryptox.EncodeHex(s.IV),
		EncryptedProfile: cryptox.EncodeHex(s.EncryptedProfile),
	})
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var dto sessionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	if dto.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported session schema version: %d", dto.SchemaVersion)
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

	s.ID = dto.ID
	s.Email = dto.Email
	s.Password = dto.Password
	s.Salt = salt
	s.IV = iv
	s.EncryptedProfile = profile
	return nil
}
