// Package auth signs users in with a login and password, issues opaque bearer
// tokens and guards the API routes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

type AuthLogHook struct{}

func (h *AuthLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Auth: " + entry.Message
	return nil
}

func (h *AuthLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

var (
	errBadCredentials   = errors.New("bad credentials")
	errUserNotActivated = errors.New("user is not activated")
	errInvalidToken     = errors.New("invalid or expired token")
)

const (
	DefaultTokenTTL  = time.Hour * 24
	RememberTokenTTL = time.Hour * 24 * 30
)

// HashPassword returns the bcrypt hash stored for a user.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password - %w", err)
	}
	return string(hash), nil
}

type Storage interface {
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}

type UserStorage struct {
	db *gorm.DB
}

func NewStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{db: db}
}

func (s *UserStorage) FindByLogin(ctx context.Context, login string) (*entity.User, error) {
	var user entity.User
	if err := s.db.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStorage) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidToken
		}
		return nil, err
	}
	return &user, nil
}

type token struct {
	userID  int64
	expires time.Time
}

// TokenStore keeps issued tokens in memory; a restart signs everyone out.
type TokenStore struct {
	mu     sync.Mutex
	tokens map[string]token
	now    func() time.Time
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]token),
		now:    time.Now,
	}
}

func (s *TokenStore) Issue(userID int64, ttl time.Duration) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[id] = token{userID: userID, expires: s.now().Add(ttl)}
	return id
}

func (s *TokenStore) Lookup(id string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[id]
	if !ok {
		return 0, false
	}
	if !s.now().Before(t.expires) {
		delete(s.tokens, id)
		return 0, false
	}
	return t.userID, true
}

func (s *TokenStore) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, id)
}

type Service struct {
	storage Storage
	tokens  *TokenStore
	log     *logrus.Entry
}

func NewService(storage Storage, tokens *TokenStore, log *logrus.Entry) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
		log:     log,
	}
}

// Authenticate checks the password and returns a new bearer token.
func (s *Service) Authenticate(ctx context.Context, login, password string, rememberMe bool) (string, error) {
	user, err := s.storage.FindByLogin(ctx, login)
	if err != nil {
		return "", err
	}
	if !user.Activated {
		return "", errUserNotActivated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Debugf("authenticate: wrong password for %s", login)
		return "", errBadCredentials
	}

	ttl := DefaultTokenTTL
	if rememberMe {
		ttl = RememberTokenTTL
	}
	return s.tokens.Issue(user.ID, ttl), nil
}

// UserByToken resolves a bearer token to an activated user.
func (s *Service) UserByToken(ctx context.Context, token string) (*entity.User, error) {
	id, ok := s.tokens.Lookup(token)
	if !ok {
		return nil, errInvalidToken
	}

	user, err := s.storage.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Activated {
		s.tokens.Revoke(token)
		return nil, errUserNotActivated
	}
	return user, nil
}

func (s *Service) Logout(token string) {
	s.tokens.Revoke(token)
}
