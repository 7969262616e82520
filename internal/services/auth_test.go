package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/almasoudi/tutorbridge-backend/internal/repos"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	gdb := newTestDB(t)
	log := newTestLogger()
	return NewAuthService(log, repos.NewUserRepo(gdb, log), "test-secret", 24*time.Hour)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Ahmed", Email: "ahmed@example.com", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "s3cret-pass" || user.PasswordHash == "" {
		t.Fatalf("password stored without hashing")
	}

	token, loggedIn, err := svc.Login(ctx, "ahmed@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token on login")
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("login returned wrong user: got=%s want=%s", loggedIn.ID, user.ID)
	}

	id, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if id != user.ID {
		t.Fatalf("token carries wrong user id: got=%s want=%s", id, user.ID)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Name: "Ahmed", Email: "ahmed@example.com", Password: "s3cret-pass",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("missing input", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "")
		assertAPIError(t, err, http.StatusBadRequest, "Email and password are required")
	})
	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		assertAPIError(t, err, http.StatusUnauthorized, "Invalid credentials")
	})
	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ahmed@example.com", "wrong")
		assertAPIError(t, err, http.StatusUnauthorized, "Invalid credentials")
	})
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)
	ctx := context.Background()

	in := RegisterInput{Name: "Ahmed", Email: "ahmed@example.com", Password: "s3cret-pass"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.Register(ctx, in)
	assertAPIError(t, err, http.StatusConflict, "User with this email already exists")
}

func TestAuthChangePassword(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name: "Ahmed", Email: "ahmed@example.com", Password: "old-pass-123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, user.ID, "not-it", "new-pass-456")
		assertAPIError(t, err, http.StatusUnauthorized, "Current password is incorrect")
	})

	if err := svc.ChangePassword(ctx, user.ID, "old-pass-123", "new-pass-456"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Login(ctx, "ahmed@example.com", "old-pass-123"); err == nil {
		t.Fatalf("old password still accepted")
	}
	if _, _, err := svc.Login(ctx, "ahmed@example.com", "new-pass-456"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthVerifyTokenRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
