package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func newIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", "todo-api", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return issuer
}

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	issuer := newIssuer(t)
	before := time.Now()

	issued, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.CSRF == "" {
		t.Fatal("expected csrf value")
	}
	if d := issued.ExpiresAt.Sub(before); d < 29*time.Minute || d > 31*time.Minute {
		t.Fatalf("expiry %v from issuance, want ~30m", d)
	}

	claims, err := issuer.Parse(issued.Token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("Subject = %q", claims.Subject)
	}
	if claims.CSRF != issued.CSRF {
		t.Fatal("csrf claim mismatch")
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Fatalf("UserID = %d, %v", id, err)
	}
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := newIssuer(t)
	past := issuer.WithClock(func() time.Time { return time.Now().Add(-time.Hour) })

	issued, err := past.Issue(7)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := issuer.Parse(issued.Token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	issuer := newIssuer(t)
	other, _ := NewTokenIssuer("other-secret", "todo-api", time.Minute)

	issued, _ := other.Issue(1)
	if _, err := issuer.Parse(issued.Token); err == nil {
		t.Fatal("token signed with another secret accepted")
	}
}

func TestTokenIssuer_RejectsTampered(t *testing.T) {
	issuer := newIssuer(t)
	issued, _ := issuer.Issue(1)

	tampered := issued.Token[:len(issued.Token)-2] + "xx"
	if _, err := issuer.Parse(tampered); err == nil {
		t.Fatal("tampered token accepted")
	}
	if _, err := issuer.Parse("not.a.token"); err == nil {
		t.Fatal("garbage accepted")
	}
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	issuer := newIssuer(t)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "1",
		Issuer:    "todo-api",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Fatal("HS512 token accepted")
	}

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := issuer.Parse(none); err == nil {
		t.Fatal("unsigned token accepted")
	}
}

func TestTokenIssuer_RejectsBadSubjectAndIssuer(t *testing.T) {
	issuer := newIssuer(t)

	sign := func(sub, iss string) string {
		claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    iss,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		}}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	cases := map[string]string{
		"non numeric subject": sign("alice", "todo-api"),
		"empty subject":       sign("", "todo-api"),
		"foreign issuer":      sign("1", "someone-else"),
	}
	for name, token := range cases {
		if _, err := issuer.Parse(token); err == nil {
			t.Errorf("%s: token accepted", name)
		}
	}
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", "x", time.Minute); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
