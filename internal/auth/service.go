// Package auth implements email/password identities and sessions on top of
// the document store, and the "admin" claim that gates content management.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrSnakeDoc/pitch/internal/domain"
	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/metrics"
	"github.com/MrSnakeDoc/pitch/internal/store"
)

const (
	CollectionUsers    = "users"
	CollectionSessions = "sessions"

	MinPasswordLength = 8
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrSessionExpired     = errors.New("session expired")
)

// Principal is the identity behind a valid session.
type Principal struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}

type user struct {
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Admin        bool      `json:"admin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Config struct {
	SessionTTL time.Duration
	HashCost   int // bcrypt cost, bcrypt.DefaultCost when 0
}

type Service struct {
	store  store.DocumentStore
	logger logger.Logger
	ttl    time.Duration
	cost   int
	now    func() time.Time

	signUpMu sync.Mutex // keeps emails unique within this process
}

// NewService returns an identity service. s may be nil: every call then
// fails with store.ErrNotConfigured.
func NewService(s store.DocumentStore, log logger.Logger, cfg Config) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	return &Service{
		store:  s,
		logger: log,
		ttl:    cfg.SessionTTL,
		cost:   cfg.HashCost,
		now:    time.Now,
	}
}

// SignUp creates an account. New accounts never carry the admin claim.
func (s *Service) SignUp(ctx context.Context, email, password string) (Principal, error) {
	p, err := s.signUp(ctx, email, password)
	metrics.RecordAuthAttempt("signup", err)
	return p, err
}

func (s *Service) signUp(ctx context.Context, email, password string) (Principal, error) {
	if s.store == nil {
		return Principal{}, store.ErrNotConfigured
	}
	email = normalizeEmail(email)
	if !domain.ValidEmail(email) {
		return Principal{}, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return Principal{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.signUpMu.Lock()
	defer s.signUpMu.Unlock()

	if _, _, err := s.findUser(ctx, email); err == nil {
		return Principal{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return Principal{}, err
	}

	data, err := json.Marshal(user{Email: email, PasswordHash: string(hash), CreatedAt: s.now().UTC()})
	if err != nil {
		return Principal{}, err
	}
	id, err := s.store.Insert(ctx, CollectionUsers, data)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user signed up", logger.String("user_id", id))
	return Principal{UserID: id, Email: email}, nil
}

// SignIn checks the credentials and opens a session. The returned token
// is the session document Id.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, Principal, error) {
	token, p, err := s.signIn(ctx, email, password)
	metrics.RecordAuthAttempt("signin", err)
	return token, p, err
}

func (s *Service) signIn(ctx context.Context, email, password string) (string, Principal, error) {
	if s.store == nil {
		return "", Principal{}, store.ErrNotConfigured
	}
	email = normalizeEmail(email)

	id, u, err := s.findUser(ctx, email)
	if err != nil {
		return "", Principal{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", Principal{}, ErrInvalidCredentials
	}

	now := s.now().UTC()
	data, err := json.Marshal(session{UserID: id, CreatedAt: now, ExpiresAt: now.Add(s.ttl)})
	if err != nil {
		return "", Principal{}, err
	}
	token, err := s.store.Insert(ctx, CollectionSessions, data)
	if err != nil {
		return "", Principal{}, fmt.Errorf("failed to open session: %w", err)
	}

	return token, Principal{UserID: id, Email: u.Email, Admin: u.Admin}, nil
}

// Verify resolves a session token. The admin claim is read from the user
// on every call so a revoked claim applies to open sessions.
func (s *Service) Verify(ctx context.Context, token string) (Principal, error) {
	if s.store == nil {
		return Principal{}, store.ErrNotConfigured
	}
	if token == "" {
		return Principal{}, ErrInvalidCredentials
	}

	doc, err := s.store.Get(ctx, CollectionSessions, token)
	if errors.Is(err, store.ErrNotFound) {
		return Principal{}, ErrInvalidCredentials
	}
	if err != nil {
		return Principal{}, err
	}

	var sess session
	if err := json.Unmarshal(doc.Data, &sess); err != nil {
		return Principal{}, fmt.Errorf("failed to decode session: %w", err)
	}
	if !s.now().Before(sess.ExpiresAt) {
		if err := s.store.Delete(ctx, CollectionSessions, token); err != nil {
			s.logger.Warn("failed to delete expired session", logger.Error(err))
		}
		return Principal{}, ErrSessionExpired
	}

	udoc, err := s.store.Get(ctx, CollectionUsers, sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return Principal{}, ErrUserNotFound
	}
	if err != nil {
		return Principal{}, err
	}
	var u user
	if err := json.Unmarshal(udoc.Data, &u); err != nil {
		return Principal{}, fmt.Errorf("failed to decode user: %w", err)
	}

	return Principal{UserID: sess.UserID, Email: u.Email, Admin: u.Admin}, nil
}

// SignOut closes a session. Unknown tokens are ignored.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if s.store == nil {
		return store.ErrNotConfigured
	}
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, CollectionSessions, token)
}

// SetAdminClaim grants or revokes the admin claim of the account behind email.
func (s *Service) SetAdminClaim(ctx context.Context, email string, admin bool) error {
	if s.store == nil {
		return store.ErrNotConfigured
	}

	id, u, err := s.findUser(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if u.Admin == admin {
		return nil
	}
	u.Admin = admin

	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.store.Replace(ctx, CollectionUsers, id, data); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("admin claim updated",
		logger.String("user_id", id),
		logger.Bool("admin", admin))
	return nil
}

// SweepExpiredSessions deletes every session expired at now and returns how many were removed.
func (s *Service) SweepExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	if s.store == nil {
		return 0, store.ErrNotConfigured
	}

	docs, err := s.store.List(ctx, CollectionSessions)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, doc := range docs {
		var sess session
		if err := json.Unmarshal(doc.Data, &sess); err == nil && now.Before(sess.ExpiresAt) {
			continue
		}
		if err := s.store.Delete(ctx, CollectionSessions, doc.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// findUser scans the users collection. Accounts are few (club staff).
func (s *Service) findUser(ctx context.Context, email string) (string, user, error) {
	docs, err := s.store.List(ctx, CollectionUsers)
	if err != nil {
		return "", user{}, err
	}
	for _, doc := range docs {
		var u user
		if err := json.Unmarshal(doc.Data, &u); err != nil {
			continue
		}
		if u.Email == email {
			return doc.ID, u, nil
		}
	}
	return "", user{}, ErrUserNotFound
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
