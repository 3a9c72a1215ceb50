package auth

import (
	"errors"
	"testing"
	"time"

	"table-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var testCredentials = Credentials{
	models.RoleAdmin:   {Username: "admin", Password: "admin-pass"},
	models.RoleKitchen: {Username: "chef", Password: "chef-pass"},
	models.RoleBilling: {Username: "till", Password: "till-pass"},
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssue_RoleMatchesCredentials(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), testCredentials)
	for role, cred := range testCredentials {
		session, err := issuer.Issue(cred.Username, cred.Password)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", role, err)
		}
		claims, err := issuer.Verify(session.Token)
		if err != nil {
			t.Fatalf("%s: verify failed: %v", role, err)
		}
		if claims.Role != role {
			t.Errorf("expected role %s, got %s", role, claims.Role)
		}
		if claims.Username != cred.Username {
			t.Errorf("expected username %s, got %s", cred.Username, claims.Username)
		}
	}
}

func TestIssue_InvalidCredentials(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), testCredentials)
	cases := []struct{ user, pass string }{
		{"admin", "wrong"},
		{"nobody", "admin-pass"},
		{"chef", "admin-pass"},
		{"", ""},
	}
	for _, tc := range cases {
		if _, err := issuer.Issue(tc.user, tc.pass); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%q/%q: expected ErrInvalidCredentials, got %v", tc.user, tc.pass, err)
		}
	}
}

func TestIssue_UnconfiguredRoleNeverMatches(t *testing.T) {
	issuer := NewIssuer([]byte("secret"), Credentials{
		models.RoleAdmin: {Username: "", Password: ""},
	})
	if _, err := issuer.Issue("", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestIssue_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hashed-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	issuer := NewIssuer([]byte("secret"), Credentials{
		models.RoleBilling: {Username: "till", Password: string(hash)},
	})
	if _, err := issuer.Issue("till", "hashed-pass"); err != nil {
		t.Fatalf("expected bcrypt match, got %v", err)
	}
	if _, err := issuer.Issue("till", string(hash)); err == nil {
		t.Fatal("raw hash must not be accepted as password")
	}
}

func TestIssue_Lifetime(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 15, 0, time.UTC)
	issuer := NewIssuer([]byte("secret"), testCredentials, WithClock(fixedClock(now)))
	session, err := issuer.Issue("chef", "chef-pass")
	if err != nil {
		t.Fatal(err)
	}
	claims, err := issuer.Verify(session.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 24*time.Hour {
		t.Errorf("expected 24h lifetime, got %v", got)
	}
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer([]byte("secret"), testCredentials, WithClock(fixedClock(now)))
	session, err := issuer.Issue("admin", "admin-pass")
	if err != nil {
		t.Fatal(err)
	}
	later := NewIssuer([]byte("secret"), testCredentials, WithClock(fixedClock(now.Add(25*time.Hour))))
	if _, err := later.Verify(session.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	session, err := NewIssuer([]byte("secret"), testCredentials).Issue("admin", "admin-pass")
	if err != nil {
		t.Fatal(err)
	}
	other := NewIssuer([]byte("other"), testCredentials)
	if _, err := other.Verify(session.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		Username: "admin",
		Role:     models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewIssuer([]byte("secret"), testCredentials).Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	if _, err := NewIssuer([]byte("secret"), testCredentials).Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
