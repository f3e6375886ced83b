package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/JustJay7/smartlawyer/internal/cache"
	"github.com/JustJay7/smartlawyer/internal/preferences"
	"github.com/JustJay7/smartlawyer/internal/validation"
	"github.com/JustJay7/smartlawyer/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *preferences.Store) {
	t.Helper()
	prefs, err := preferences.Open(filepath.Join(t.TempDir(), "prefs.db"), cache.NewCache(0))
	require.NoError(t, err)
	t.Cleanup(func() { prefs.Close() })
	return NewService(prefs, validation.New(), logger.NewNop()), prefs
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "blank email", email: " ", password: "123456", wantErr: ErrEmailRequired},
		{name: "malformed email", email: "lawyer", password: "123456", wantErr: ErrInvalidEmail},
		{name: "blank password", email: "a@b.com", password: "", wantErr: ErrPasswordRequired},
		{name: "five characters", email: "a@b.com", password: "12345", wantErr: ErrWeakPassword},
		{name: "six characters", email: "a@b.com", password: "123456"},
		{name: "five arabic letters", email: "a@b.com", password: "كلمةس", wantErr: ErrWeakPassword},
		{name: "six arabic letters", email: "a@b.com", password: "كلمةسر"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setupService(t)
			err := svc.Register(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			session, err := svc.Status(context.Background())
			require.NoError(t, err)
			assert.Equal(t, Session{LoggedIn: true, Email: tt.email}, session)
		})
	}
}

func TestRegisterSameEmailTwice(t *testing.T) {
	svc, prefs := setupService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "a@b.com", "123456"))
	assert.ErrorIs(t, svc.Register(ctx, "a@b.com", "abcdef"), ErrAlreadyRegistered)

	// A different email replaces the only account.
	require.NoError(t, svc.Register(ctx, "c@d.com", "abcdef"))
	username, password, err := prefs.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", username)
	assert.Equal(t, "abcdef", password)
}

func TestLogin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "a@b.com", "123456"))
	require.NoError(t, svc.Logout(ctx))

	assert.ErrorIs(t, svc.Login(ctx, "", "123456"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "a@b.com", ""), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "not-an-email", "123456"), ErrInvalidEmail)
	assert.ErrorIs(t, svc.Login(ctx, "a@b.com", "wrong1"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, "x@b.com", "123456"), ErrInvalidCredentials)

	session, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, session.LoggedIn)

	require.NoError(t, svc.Login(ctx, "a@b.com", "123456"))
	session, err = svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{LoggedIn: true, Email: "a@b.com"}, session)
}

func TestLoginWithNoAccount(t *testing.T) {
	svc, _ := setupService(t)
	assert.ErrorIs(t, svc.Login(context.Background(), "a@b.com", "123456"), ErrInvalidCredentials)
}

func TestBiometricLogin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.BiometricLogin(ctx)
	assert.ErrorIs(t, err, ErrNoSavedCredentials)

	require.NoError(t, svc.Register(ctx, "a@b.com", "123456"))
	require.NoError(t, svc.Logout(ctx))

	email, err := svc.BiometricLogin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)

	session, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, session.LoggedIn)
}

func TestLogoutKeepsAccount(t *testing.T) {
	svc, prefs := setupService(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "a@b.com", "123456"))

	require.NoError(t, svc.Logout(ctx))

	session, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{}, session)

	username, _, err := prefs.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", username)
}

func TestStatusNeedsEmailAndFlag(t *testing.T) {
	svc, prefs := setupService(t)
	ctx := context.Background()

	require.NoError(t, prefs.SetLoggedIn(ctx, true))
	session, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, session.LoggedIn, "flag without an email is not a session")
}

func TestSignInWithIdentity(t *testing.T) {
	svc, prefs := setupService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SignInWithIdentity(ctx, Identity{Subject: "123"}), ErrNoIdentityEmail)

	require.NoError(t, svc.SignInWithIdentity(ctx, Identity{Subject: "123", Email: "g@example.com", DisplayName: "G"}))
	session, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, Session{LoggedIn: true, Email: "g@example.com"}, session)

	username, _, err := prefs.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, username)
}
