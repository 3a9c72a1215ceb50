package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"table-ordering-api/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the fixed lifetime of a session token
const TokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Credential is one operator-configured username/password pair. Password
// may be plain text or a bcrypt hash.
type Credential struct {
	Username string
	Password string
}

func (c Credential) configured() bool {
	return c.Username != "" && c.Password != ""
}

// Credentials maps each staff role to its credential pair
type Credentials map[models.UserRole]Credential

type Claims struct {
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Session is the result of a successful sign-in
type Session struct {
	Token     string
	Claims    *Claims
	ExpiresAt time.Time
}

// Issuer signs and verifies session tokens against a fixed credential table
type Issuer struct {
	secret      []byte
	credentials Credentials
	now         func() time.Time
}

type Option func(*Issuer)

// WithClock overrides the time source used for issuing and verifying
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret []byte, credentials Credentials, opts ...Option) *Issuer {
	i := &Issuer{secret: secret, credentials: credentials, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Authenticate returns the role whose credential pair matches
func (i *Issuer) Authenticate(username, password string) (models.UserRole, error) {
	for _, role := range models.Roles {
		cred, ok := i.credentials[role]
		if !ok || !cred.configured() {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(username), []byte(cred.Username)) != 1 {
			continue
		}
		if passwordMatches(cred.Password, password) {
			return role, nil
		}
	}
	return "", ErrInvalidCredentials
}

func passwordMatches(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// Issue validates the credential pair and signs a token for the matching role
func (i *Issuer) Issue(username, password string) (*Session, error) {
	role, err := i.Authenticate(username, password)
	if err != nil {
		return nil, err
	}
	return i.Sign(username, role)
}

// Sign creates a token for an already authenticated identity
func (i *Issuer) Sign(username string, role models.UserRole) (*Session, error) {
	now := i.now()
	claims := &Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{Token: token, Claims: claims, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Verify checks signature and expiry. It never touches storage.
func (i *Issuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
