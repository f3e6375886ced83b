// Package preferences persists the login state and the single cached account
// in a key/value table kept in its own SQLite file.
//
// The password is stored in cleartext, matching the data already on devices.
// Moving to a hashed secret would change the on-disk format and is tracked as a
// separate migration.
package preferences

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/JustJay7/smartlawyer/internal/cache"
	"github.com/JustJay7/smartlawyer/internal/database"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stored keys.
const (
	KeyUsername     = "username"
	KeyPassword     = "password"
	KeyUseBiometric = "use_biometric"
	KeyIsLoggedIn   = "is_logged_in"
	KeyLanguage     = "language"
	KeyRememberMe   = "remember_me"
	KeyUserEmail    = "user_email"
)

const DefaultLanguage = "ar"

// ErrInvalidLanguage is returned by SetLanguage for tags that do not parse.
var ErrInvalidLanguage = errors.New("invalid language tag")

// Preference is one stored key.
type Preference struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (Preference) TableName() string {
	return "preferences"
}

// Store is safe for concurrent use.
type Store struct {
	// mu keeps the cache in step with the table across concurrent writers.
	mu              sync.Mutex
	db              *gorm.DB
	cache           cache.Cache
	defaultLanguage string
}

// Open opens (or creates) the preferences file at path.
func Open(path string, c cache.Cache) (*Store, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Preference{}); err != nil {
		return nil, fmt.Errorf("failed to migrate preferences: %w", err)
	}
	return New(db, c), nil
}

// New wraps an already migrated handle.
func New(db *gorm.DB, c cache.Cache) *Store {
	return &Store{db: db, cache: c, defaultLanguage: DefaultLanguage}
}

// WithDefaultLanguage sets what Language returns before a language is saved.
func (s *Store) WithDefaultLanguage(lang string) *Store {
	if lang != "" {
		s.defaultLanguage = lang
	}
	return s
}

func (s *Store) Close() error {
	return database.Close(s.db)
}

func (s *Store) CacheStats() cache.CacheStats {
	return s.cache.Stats()
}

// SaveCredentials replaces the cached account. Only one pair is ever kept.
func (s *Store) SaveCredentials(ctx context.Context, username, password string) error {
	return s.put(ctx, map[string]string{KeyUsername: username, KeyPassword: password})
}

// Credentials returns the cached pair, or two empty strings when none is set.
func (s *Store) Credentials(ctx context.Context) (string, string, error) {
	username, err := s.getString(ctx, KeyUsername, "")
	if err != nil {
		return "", "", err
	}
	password, err := s.getString(ctx, KeyPassword, "")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func (s *Store) SetLoggedIn(ctx context.Context, loggedIn bool) error {
	return s.putBool(ctx, KeyIsLoggedIn, loggedIn)
}

func (s *Store) IsLoggedIn(ctx context.Context) (bool, error) {
	return s.getBool(ctx, KeyIsLoggedIn)
}

func (s *Store) SetBiometricEnabled(ctx context.Context, enabled bool) error {
	return s.putBool(ctx, KeyUseBiometric, enabled)
}

func (s *Store) IsBiometricEnabled(ctx context.Context) (bool, error) {
	return s.getBool(ctx, KeyUseBiometric)
}

func (s *Store) SetRememberMe(ctx context.Context, enabled bool) error {
	return s.putBool(ctx, KeyRememberMe, enabled)
}

func (s *Store) IsRememberMe(ctx context.Context) (bool, error) {
	return s.getBool(ctx, KeyRememberMe)
}

// SetLanguage stores lang in canonical BCP 47 form.
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	return s.put(ctx, map[string]string{KeyLanguage: tag.String()})
}

func (s *Store) Language(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyLanguage, s.defaultLanguage)
}

// SaveLoginSession marks email as the signed-in user.
func (s *Store) SaveLoginSession(ctx context.Context, email string) error {
	return s.put(ctx, map[string]string{KeyIsLoggedIn: "true", KeyUserEmail: email})
}

// SavedEmail returns the email of the last session, or "".
func (s *Store) SavedEmail(ctx context.Context) (string, error) {
	return s.getString(ctx, KeyUserEmail, "")
}

// ClearSession ends the session but keeps the cached account, so biometric
// login stays available.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.remove(ctx, KeyIsLoggedIn, KeyUserEmail)
}

// ClearAll wipes every stored key.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Where("1 = 1").Delete(&Preference{}).Error; err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	s.cache.Clear()
	return nil
}

func (s *Store) put(ctx context.Context, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]Preference, 0, len(values))
	for k, v := range values {
		rows = append(rows, Preference{Key: k, Value: v})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	for k, v := range values {
		s.cache.Set(k, v)
	}
	return nil
}

func (s *Store) remove(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.WithContext(ctx).Where("`key` IN ?", keys).Delete(&Preference{}).Error; err != nil {
		return fmt.Errorf("failed to remove preferences: %w", err)
	}
	for _, k := range keys {
		s.cache.Delete(k)
	}
	return nil
}

func (s *Store) getString(ctx context.Context, key, fallback string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.cache.Get(key); ok {
		return v, nil
	}

	var pref Preference
	err := s.db.WithContext(ctx).Where("`key` = ?", key).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read preference %q: %w", key, err)
	}

	s.cache.Set(key, pref.Value)
	return pref.Value, nil
}

func (s *Store) putBool(ctx context.Context, key string, value bool) error {
	return s.put(ctx, map[string]string{key: strconv.FormatBool(value)})
}

func (s *Store) getBool(ctx context.Context, key string) (bool, error) {
	v, err := s.getString(ctx, key, "false")
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return b, nil
}
