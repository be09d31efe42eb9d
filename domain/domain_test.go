package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIs_MatchesWrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("repo: %w", WrapError(ErrCodeNotFound, ErrTaskNotFound.Message, errors.New("no rows")))
	if !errors.Is(wrapped, ErrTaskNotFound) {
		t.Fatal("wrapped sentinel must match")
	}
	if errors.Is(wrapped, ErrUserNotFound) {
		t.Fatal("different message must not match")
	}
	if !IsDomainError(wrapped, ErrCodeNotFound) {
		t.Fatal("IsDomainError must see through wrapping")
	}
}

func TestTaskPatch_Validate(t *testing.T) {
	long := strings.Repeat("x", MaxTitleLength+1)
	cases := []struct {
		name  string
		patch TaskPatch
		ok    bool
	}{
		{"status only", TaskPatch{Status: TaskDone}, true},
		{"missing status", TaskPatch{}, false},
		{"long title", TaskPatch{Title: &long, Status: TaskPending}, false},
		{"empty title pointer", TaskPatch{Title: new(string), Status: TaskPending}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.patch.Validate()
			if (err == nil) != tc.ok {
				t.Fatalf("Validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestValidateCredentials_Boundaries(t *testing.T) {
	if err := ValidateCredentials(strings.Repeat("a", MaxLoginLength), strings.Repeat("p", MaxPasswordLength)); err != nil {
		t.Fatalf("limits must be inclusive: %v", err)
	}
	if err := ValidateCredentials("abc", strings.Repeat("p", MaxPasswordLength+1)); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestValidateCredentials_MultibytePasswordOverBcryptLimit(t *testing.T) {
	password := strings.Repeat("😀", 19)
	if len([]rune(password)) > MaxPasswordLength {
		t.Fatal("fixture must be within the rune limit")
	}
	if err := ValidateCredentials("emoji", password); !IsDomainError(err, ErrCodeInvalid) {
		t.Fatalf("expected invalid error for %d-byte password, got %v", len(password), err)
	}
	if err := ValidateCredentials("emoji", strings.Repeat("😀", 18)); err != nil {
		t.Fatalf("72-byte password must be accepted: %v", err)
	}
}
