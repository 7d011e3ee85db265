package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MrSnakeDoc/pitch/internal/logger"
	"github.com/MrSnakeDoc/pitch/internal/store"
	"github.com/MrSnakeDoc/pitch/internal/store/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	s := memory.New()
	svc := NewService(s, logger.New("error", false), Config{SessionTTL: time.Hour, HashCost: bcrypt.MinCost})
	return svc, s
}

func TestSignUpSignInVerify(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.SignUp(ctx, "  Coach@Example.com ", "correct horse")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if p.Email != "coach@example.com" || p.Admin {
		t.Errorf("principal = %+v", p)
	}

	token, _, err := svc.SignIn(ctx, "coach@example.com", "correct horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	got, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.UserID != p.UserID || got.Admin {
		t.Errorf("Verify = %+v, want %+v", got, p)
	}

	if err := svc.SignOut(ctx, token); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(ctx, token); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Verify after SignOut = %v", err)
	}
}

func TestSignUpErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "taken@example.com", "password1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"bad email", "not-an-email", "password1", ErrInvalidEmail},
		{"short password", "new@example.com", "short", ErrWeakPassword},
		{"taken", "TAKEN@example.com", "password1", ErrEmailTaken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSignInErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "coach@example.com", "password1"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.SignIn(ctx, "nobody@example.com", "password1"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: %v", err)
	}
	if _, _, err := svc.SignIn(ctx, "coach@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
}

func TestAdminClaim(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.SignUp(ctx, "owner@example.com", "password1"); err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.SignIn(ctx, "owner@example.com", "password1")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.SetAdminClaim(ctx, "owner@example.com", true); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if p, _ := svc.Verify(ctx, token); !p.Admin {
		t.Error("claim not visible on open session")
	}

	if err := svc.SetAdminClaim(ctx, "owner@example.com", false); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if p, _ := svc.Verify(ctx, token); p.Admin {
		t.Error("revoked claim still visible")
	}

	if err := svc.SetAdminClaim(ctx, "ghost@example.com", true); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user: %v", err)
	}
}

func TestSessionsExpire(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.SignUp(ctx, "coach@example.com", "password1"); err != nil {
		t.Fatal(err)
	}
	old, _, _ := svc.SignIn(ctx, "coach@example.com", "password1")
	now = now.Add(30 * time.Minute)
	fresh, _, _ := svc.SignIn(ctx, "coach@example.com", "password1")

	now = now.Add(45 * time.Minute) // old is 75 minutes old, fresh 45
	if _, err := svc.Verify(ctx, old); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Verify(old) = %v, want ErrSessionExpired", err)
	}
	if s.Count(CollectionSessions) != 1 {
		t.Errorf("expired session not deleted on verify")
	}

	now = now.Add(time.Hour)
	n, err := svc.SweepExpiredSessions(ctx, now)
	if err != nil || n != 1 {
		t.Errorf("Sweep = (%d, %v), want (1, nil)", n, err)
	}
	if _, err := svc.Verify(ctx, fresh); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Verify(fresh) after sweep = %v", err)
	}
}

func TestNoStore(t *testing.T) {
	svc := NewService(nil, logger.New("error", false), Config{})
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "a@b.co", "password1"); !errors.Is(err, store.ErrNotConfigured) {
		t.Errorf("SignUp: %v", err)
	}
	if _, err := svc.Verify(ctx, "t"); !errors.Is(err, store.ErrNotConfigured) {
		t.Errorf("Verify: %v", err)
	}
}

func TestCode(t *testing.T) {
	for err, want := range map[error]string{
		ErrUserNotFound:       "auth.user_not_found",
		ErrInvalidCredentials: "auth.invalid_credentials",
		ErrEmailTaken:         "auth.email_taken",
		ErrWeakPassword:       "auth.weak_password",
		ErrInvalidEmail:       "auth.invalid_email",
		ErrSessionExpired:     "auth.session_expired",
		store.ErrUnavailable:  "auth.failed",
	} {
		if got := Code(err); got != want {
			t.Errorf("Code(%v) = %q, want %q", err, got, want)
		}
	}
	if got := Code(fmt.Errorf("signup: %w", ErrWeakPassword)); got != "auth.weak_password" {
		t.Errorf("wrapped error code = %q", got)
	}
}

func TestPrincipalContext(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Error("empty context has a principal")
	}
	ctx := WithPrincipal(context.Background(), Principal{UserID: "u1", Admin: true})
	if p, ok := FromContext(ctx); !ok || p.UserID != "u1" || !p.Admin {
		t.Errorf("FromContext = %+v, %v", p, ok)
	}
}
