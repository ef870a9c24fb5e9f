// Package services contains the application services of the teamboard auth
// core. This file defines the authentication service: login, signup,
// logout, profile updates, and session rehydration on startup.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/lexazver/teamboard/internal/accounts"
	"github.com/lexazver/teamboard/internal/common"
	"github.com/lexazver/teamboard/internal/cryptox"
	"github.com/lexazver/teamboard/internal/logging"
	"github.com/lexazver/teamboard/internal/models"
	"github.com/lexazver/teamboard/internal/session"
)

// state tracks the signed-in user machine: SignedOut -> SignedIn on a
// successful login, back to SignedOut on logout or any authentication
// failure.
type state int

const (
	stateSignedOut state = iota
	stateSignedIn
)

// SignupDetails is the validated input for account creation.
type SignupDetails struct {
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
}

// ProfilePatch holds the profile fields a signed-in user may change.
// Nil fields are left untouched.
type ProfilePatch struct {
	FirstName *string
	LastName  *string
	Role      *models.Role
	PhotoURL  *string
}

// AuthService defines the operations the UI layer calls.
//
// Contract:
//   - Login: resolve credentials and sign in; account-not-found and
//     wrong-password are indistinguishable to the caller.
//   - Signup: create an account; the caller logs in explicitly afterwards.
//   - Logout: always succeeds.
//   - UpdateProfile: valid only while signed in with a live session record.
//   - Restore: startup rehydration; never reports an error.
//   - CurrentUser: the observable signed-in identity, nil when signed out.
//   - Loading: true until Restore has completed.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Signup(ctx context.Context, details SignupDetails) error
	Logout(ctx context.Context)
	UpdateProfile(ctx context.Context, patch ProfilePatch) error
	Restore(ctx context.Context)
	CurrentUser() *models.User
	Loading() bool
}

type authService struct {
	accounts accounts.Repository
	sessions *session.Manager
	log      logging.Logger
	validate *validator.Validate

	// mu serializes operations (a double-submitted form must not race the
	// read-modify-write cycle) and guards the fields below.
	mu      sync.Mutex
	state   state
	user    *models.User
	loading bool
}

func NewAuthService(accounts accounts.Repository, sessions *session.Manager, log logging.Logger) AuthService {
	return &authService{
		accounts: accounts,
		sessions: sessions,
		log:      log,
		validate: validator.New(),
		loading:  true,
	}
}

// Login authenticates the user and saves a fresh session record.
func (s *authService) Login(ctx context.Context, email string, password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, sess, err := s.authenticate(ctx, email, password)
	if err != nil {
		s.user = nil
		s.state = stateSignedOut
		return err
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		s.user = nil
		s.state = stateSignedOut
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.user = user
	s.state = stateSignedIn
	s.log.Info(ctx, "user logged in", "email", user.Email, "role", user.Role)
	return nil
}

// authenticate resolves the account, derives the key and decrypts the
// profile. Account-not-found and failed decryption collapse into the same
// ErrInvalidCredentials so the error cannot reveal which emails are
// registered.
func (s *authService) authenticate(ctx context.Context, email string, password []byte) (*models.User, *models.Session, error) {
	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to look up account: %w", err)
	}

	key := cryptox.DeriveKey(password, acc.Salt)
	defer common.WipeBytes(key)

	var profile models.Profile
	if err := cryptox.Decrypt(key, acc.IV, acc.EncryptedProfile, &profile); err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to decrypt profile: %w", err)
	}

	// The session carries the plaintext password so the key can be
	// re-derived on the next start without prompting again.
	sess := &models.Session{
		ID:               acc.ID,
		Email:            acc.Email,
		Password:         string(password),
		Salt:             acc.Salt,
		IV:               acc.IV,
		EncryptedProfile: acc.EncryptedProfile,
	}
	return buildUser(acc, &profile), sess, nil
}

// Signup creates a new account with the default role and a placeholder
// avatar. It does not sign the new user in.
func (s *authService) Signup(ctx context.Context, details SignupDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validate.Struct(details); err != nil {
		return fmt.Errorf("invalid signup details: %w", err)
	}

	if _, err := s.accounts.FindByEmail(ctx, details.Email); err == nil {
		return common.ErrDuplicateAccount
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up account: %w", err)
	}

	salt, err := common.GenerateRandBytes(cryptox.SaltSize)
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	key := cryptox.DeriveKey([]byte(details.Password), salt)
	defer common.WipeBytes(key)

	profile := models.Profile{
		FirstName: details.FirstName,
		LastName:  details.LastName,
		Role:      models.RoleAthlete,
		PhotoURL:  PlaceholderAvatarURL(details.FirstName, details.LastName),
	}
	iv, ciphertext, err := cryptox.Encrypt(key, profile)
	if err != nil {
		return fmt.Errorf("failed to encrypt profile: %w", err)
	}

	acc := &models.Account{
		ID:               uuid.NewString(),
		Email:            details.Email,
		Salt:             salt,
		IV:               iv,
		EncryptedProfile: ciphertext,
	}
	if err := s.accounts.Insert(ctx, acc); err != nil {
		return err
	}

	s.log.Info(ctx, "account created", "email", details.Email)
	return nil
}

// Logout always succeeds: the in-memory user is dropped and the session
// slot cleared. A failing session store only gets a warning; there is
// nothing the caller could do about it.
func (s *authService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear session record", "error", err)
	}
	s.user = nil
	s.state = stateSignedOut
	s.log.Info(ctx, "user logged out")
}

// UpdateProfile decrypts the current profile, merges the patch, re-encrypts
// with a fresh IV and commits the result to the account store, the session
// slot, and the in-memory user, in that order. All crypto completes in
// memory before any store is touched, so a failure up to that point leaves
// all three copies untouched.
func (s *authService) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateSignedIn {
		return common.ErrNoActiveSession
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return fmt.Errorf("unknown role: %q", *patch.Role)
	}

	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		// cleared behind our back, e.g. by another process
		s.user = nil
		s.state = stateSignedOut
		return common.ErrNoActiveSession
	}

	acc, err := s.accounts.FindByEmail(ctx, sess.Email)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}

	key := cryptox.DeriveKey([]byte(sess.Password), acc.Salt)
	defer common.WipeBytes(key)

	var profile models.Profile
	if err := cryptox.Decrypt(key, acc.IV, acc.EncryptedProfile, &profile); err != nil {
		if errors.Is(err, common.ErrDecryptionFailed) {
			// the session password no longer decrypts the account record
			return common.ErrInvalidCredentials
		}
		return fmt.Errorf("failed to decrypt profile: %w", err)
	}

	applyPatch(&profile, patch)

	iv, ciphertext, err := cryptox.Encrypt(key, profile)
	if err != nil {
		return fmt.Errorf("failed to encrypt profile: %w", err)
	}

	if err := s.accounts.Update(ctx, acc.ID, iv, ciphertext); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	sess.Salt = acc.Salt
	sess.IV = iv
	sess.EncryptedProfile = ciphertext
	if err := s.sessions.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	acc.IV = iv
	acc.EncryptedProfile = ciphertext
	s.user = buildUser(acc, &profile)
	s.log.Info(ctx, "profile updated", "email", acc.Email)
	return nil
}

// Restore runs once at startup: it seeds the credential store and, when a
// session record survives from the current session, re-derives the key and
// decrypts the profile so the user is signed in again without a prompt.
// Every failure path degrades to SignedOut; Restore never reports an error.
func (s *authService) Restore(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	if err := s.accounts.Initialize(ctx); err != nil {
		s.log.Error(ctx, "failed to initialize credential store", "error", err)
		return
	}

	sess, err := s.sessions.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "failed to load session", "error", err)
		return
	}
	if sess == nil {
		return
	}

	user, fresh, err := s.authenticate(ctx, sess.Email, []byte(sess.Password))
	if err != nil {
		s.log.Warn(ctx, "session rehydration failed, signing out", "error", err)
		if cerr := s.sessions.Clear(ctx); cerr != nil {
			s.log.Warn(ctx, "failed to clear session record", "error", cerr)
		}
		return
	}

	// keep the session's key-derivation material in step with the account
	// record as of this read
	if err := s.sessions.Save(ctx, fresh); err != nil {
		s.log.Warn(ctx, "failed to refresh session record", "error", err)
	}

	s.user = user
	s.state = stateSignedIn
	s.log.Info(ctx, "session restored", "email", user.Email)
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *authService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether startup rehydration is still in progress.
func (s *authService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// PlaceholderAvatarURL builds the deterministic avatar assigned at signup,
// used until the user uploads a photo.
func PlaceholderAvatarURL(firstName, lastName string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(firstName+" "+lastName)
}

func buildUser(acc *models.Account, p *models.Profile) *models.User {
	return &models.User{
		ID:        acc.ID,
		Email:     acc.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      p.Role,
		PhotoURL:  p.PhotoURL,
	}
}

func applyPatch(p *models.Profile, patch ProfilePatch) {
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	if patch.PhotoURL != nil {
		p.PhotoURL = *patch.PhotoURL
	}
}
