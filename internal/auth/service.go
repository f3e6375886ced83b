// Package auth implements sign-in for the app's single local account.
//
// There is no user table: the preferences store caches one email/password
// pair, and registering simply replaces it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/JustJay7/smartlawyer/internal/preferences"
	"github.com/JustJay7/smartlawyer/internal/validation"
	"github.com/JustJay7/smartlawyer/pkg/logger"
)

const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrAlreadyRegistered  = errors.New("email is already registered")
	ErrNoSavedCredentials = errors.New("no saved credentials for biometric login")
	ErrNoIdentityEmail    = errors.New("identity has no email")
)

// Identity is what an external sign-in provider vouches for.
type Identity struct {
	Subject     string `json:"subject"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// IdentityProvider exchanges a provider token for a verified identity.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Session describes the current login state.
type Session struct {
	LoggedIn bool   `json:"loggedIn"`
	Email    string `json:"email"`
}

type Service struct {
	prefs    *preferences.Store
	validate *validation.Validator
	logger   *logger.Logger
}

func NewService(prefs *preferences.Store, validate *validation.Validator, logger *logger.Logger) *Service {
	return &Service{prefs: prefs, validate: validate, logger: logger.With("component", "auth")}
}

// Login succeeds only when the pair equals the cached account.
func (s *Service) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return ErrInvalidCredentials
	}
	if !s.validate.LoginEmail(email) {
		return ErrInvalidEmail
	}

	username, saved, err := s.prefs.Credentials(ctx)
	if err != nil {
		return err
	}
	if email != username || password != saved {
		s.logger.Info("Login rejected", "email", email)
		return ErrInvalidCredentials
	}

	if err := s.prefs.SaveLoginSession(ctx, email); err != nil {
		return err
	}
	s.logger.Info("User logged in", "email", email)
	return nil
}

// Register replaces the cached account with email/password and signs in.
func (s *Service) Register(ctx context.Context, email, password string) error {
	switch {
	case strings.TrimSpace(email) == "":
		return ErrEmailRequired
	case !s.validate.LoginEmail(email):
		return ErrInvalidEmail
	case strings.TrimSpace(password) == "":
		return ErrPasswordRequired
	case utf8.RuneCountInString(password) < MinPasswordLength:
		return ErrWeakPassword
	}

	username, _, err := s.prefs.Credentials(ctx)
	if err != nil {
		return err
	}
	if email == username {
		return ErrAlreadyRegistered
	}

	if err := s.prefs.SaveCredentials(ctx, email, password); err != nil {
		return err
	}
	if err := s.prefs.SaveLoginSession(ctx, email); err != nil {
		return err
	}
	s.logger.Info("User registered", "email", email)
	return nil
}

// BiometricLogin signs in the cached account. The caller must only invoke it
// after the platform's biometric prompt succeeded; the password is not
// checked again.
func (s *Service) BiometricLogin(ctx context.Context) (string, error) {
	username, _, err := s.prefs.Credentials(ctx)
	if err != nil {
		return "", err
	}
	if username == "" {
		return "", ErrNoSavedCredentials
	}

	if err := s.prefs.SaveLoginSession(ctx, username); err != nil {
		return "", err
	}
	s.logger.Info("User logged in with biometrics", "email", username)
	return username, nil
}

// SignInWithIdentity starts a session for an identity verified by an external
// provider. The cached password account is left untouched.
func (s *Service) SignInWithIdentity(ctx context.Context, id Identity) error {
	if id.Email == "" {
		return ErrNoIdentityEmail
	}
	if err := s.prefs.SaveLoginSession(ctx, id.Email); err != nil {
		return err
	}
	s.logger.Info("User logged in with identity provider", "email", id.Email, "subject", id.Subject)
	return nil
}

// Logout ends the session and keeps the cached account.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.prefs.ClearSession(ctx); err != nil {
		return err
	}
	return s.prefs.SetLoggedIn(ctx, false)
}

// Status reports a session as active only when both the email and the
// logged-in flag are present.
func (s *Service) Status(ctx context.Context) (Session, error) {
	email, err := s.prefs.SavedEmail(ctx)
	if err != nil {
		return Session{}, err
	}
	loggedIn, err := s.prefs.IsLoggedIn(ctx)
	if err != nil {
		return Session{}, err
	}
	if email == "" || !loggedIn {
		return Session{}, nil
	}
	return Session{LoggedIn: true, Email: email}, nil
}
