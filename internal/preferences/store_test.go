package preferences

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/JustJay7/smartlawyer/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, cache.NewCache(0))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCredentialsDefaultToEmpty(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	username, password, err := s.Credentials(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", username)
	assert.Equal(t, "", password)
}

func TestSaveCredentialsOverwrites(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	require.NoError(t, s.SaveCredentials(ctx, "first@example.com", "secret1"))
	require.NoError(t, s.SaveCredentials(ctx, "second@example.com", "secret2"))

	username, password, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second@example.com", username)
	assert.Equal(t, "secret2", password)

	var rows int64
	require.NoError(t, s.db.Model(&Preference{}).Where("`key` = ?", KeyUsername).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestFlagsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	loggedIn, err := s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	require.NoError(t, s.SaveCredentials(ctx, "a@b.com", "123456"))
	require.NoError(t, s.SetLoggedIn(ctx, true))
	require.NoError(t, s.SetBiometricEnabled(ctx, true))
	require.NoError(t, s.SetRememberMe(ctx, true))

	require.NoError(t, s.SetLoggedIn(ctx, false))

	loggedIn, err = s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	biometric, err := s.IsBiometricEnabled(ctx)
	require.NoError(t, err)
	assert.True(t, biometric)

	remember, err := s.IsRememberMe(ctx)
	require.NoError(t, err)
	assert.True(t, remember)

	username, _, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", username, "logging out keeps the cached account")
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	require.NoError(t, s.SaveCredentials(ctx, "a@b.com", "123456"))
	require.NoError(t, s.SaveLoginSession(ctx, "a@b.com"))

	email, err := s.SavedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
	loggedIn, err := s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	require.NoError(t, s.ClearSession(ctx))

	email, err = s.SavedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
	loggedIn, err = s.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)

	username, password, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", username)
	assert.Equal(t, "123456", password)
}

func TestLanguage(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	lang, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, lang)

	require.NoError(t, s.SetLanguage(ctx, "EN-us"))
	lang, err = s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, "en-US", lang)

	assert.ErrorIs(t, s.SetLanguage(ctx, "not a tag!"), ErrInvalidLanguage)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db"))

	require.NoError(t, s.SaveCredentials(ctx, "a@b.com", "123456"))
	require.NoError(t, s.SetBiometricEnabled(ctx, true))
	require.NoError(t, s.SetLanguage(ctx, "en"))

	require.NoError(t, s.ClearAll(ctx))

	username, password, err := s.Credentials(ctx)
	require.NoError(t, err)
	assert.Empty(t, username)
	assert.Empty(t, password)
	biometric, err := s.IsBiometricEnabled(ctx)
	require.NoError(t, err)
	assert.False(t, biometric)
	lang, err := s.Language(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultLanguage, lang)
}

func TestValuesSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := Open(path, cache.NewCache(0))
	require.NoError(t, err)
	require.NoError(t, s.SaveCredentials(ctx, "a@b.com", "123456"))
	require.NoError(t, s.SetRememberMe(ctx, true))
	require.NoError(t, s.Close())

	reopened := openStore(t, path)
	username, _, err := reopened.Credentials(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", username)
	remember, err := reopened.IsRememberMe(ctx)
	require.NoError(t, err)
	assert.True(t, remember)
	assert.Equal(t, int64(0), reopened.CacheStats().Hits)
}

func TestDefaultLanguageOverride(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "prefs.db")).WithDefaultLanguage("en")

	lang, err := s.Language(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
}
