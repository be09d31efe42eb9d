package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fastygo/todo/domain"
	"github.com/fastygo/todo/internal/security"
	"github.com/fastygo/todo/internal/testutil"
	"github.com/fastygo/todo/repository/sqlite"
)

func newUseCase(t *testing.T) (*UseCase, *security.TokenIssuer) {
	t.Helper()
	tokens, err := security.NewTokenIssuer("test-secret", "todo-test", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	users := sqlite.NewUserRepository(testutil.OpenSQLite(t))
	return New(users, security.NewPasswordHasher(bcrypt.MinCost), tokens, nil), tokens
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc, tokens := newUseCase(t)

	user, err := uc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	issued, err := uc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := tokens.Parse(issued.Token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	uid, _ := claims.UserID()
	if uid != user.ID {
		t.Fatalf("token subject = %d, want %d", uid, user.ID)
	}
	if issued.CSRF == "" || claims.CSRF != issued.CSRF {
		t.Fatal("csrf value must be embedded in the token")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	if _, err := uc.Register(ctx, "bob", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := uc.Register(ctx, "bob", "other"); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	if _, err := uc.ValidateCredentials(ctx, "bob", "pw"); err != nil {
		t.Fatalf("first password must still work: %v", err)
	}
	if _, err := uc.ValidateCredentials(ctx, "bob", "other"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("rejected duplicate must not change the password, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newUseCase(t)

	cases := []struct {
		name, login, password string
	}{
		{"empty login", "", "pw"},
		{"long login", "abcdefghijklm", "pw"},
		{"empty password", "carol", ""},
		{"long password", "carol", "123456789012345678901"},
		{"password over 72 bytes", "carol", strings.Repeat("😀", 19)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Register(context.Background(), tc.login, tc.password)
			if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
				t.Fatalf("expected invalid error, got %v", err)
			}
		})
	}
}

func TestValidateCredentials_Failures(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase(t)

	if _, err := uc.Register(ctx, "dave", "right"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	for _, tc := range []struct{ login, password string }{
		{"dave", "wrong"},
		{"Dave", "right"},
		{"nobody", "right"},
		{"", ""},
	} {
		if _, err := uc.ValidateCredentials(ctx, tc.login, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("(%q, %q): expected ErrInvalidCredentials, got %v", tc.login, tc.password, err)
		}
	}

	id, err := uc.ValidateCredentials(ctx, "dave", "right")
	if err != nil || id <= 0 {
		t.Fatalf("ValidateCredentials = %d, %v", id, err)
	}
}
