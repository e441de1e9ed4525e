package session

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mdouchement/novatech/internal/cmserror"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/pkg/errors"
)

// Issuer is the JWT issuer claim.
const Issuer = "novatech"

type (
	// A Verifier tells whether a store session token is still valid.
	Verifier interface {
		Authorized(ctx context.Context, token string) (bool, error)
	}

	// A Manager manages admin sessions.
	Manager interface {
		// JWTSigningKey returns the HS256 signing key, nil when bearer tokens are the store tokens.
		JWTSigningKey() []byte
		// NewClaims returns an empty claims set used to parse JWTs.
		NewClaims() jwt.Claims
		// Issue returns the bearer token handed out for a successful login.
		Issue(login model.Login, email string) (string, error)
		// Validate validates a bearer token (string or *jwt.Token) and returns the session subject.
		Validate(ctx context.Context, token any) (string, error)
	}

	// Claims are the JWT claims of an admin session.
	Claims struct {
		jwt.RegisteredClaims
		// Session is the store session token the JWT is bound to.
		Session string `json:"sid"`
	}

	manager struct {
		verifier Verifier
		// JWT params
		signingKey []byte
		ttl        time.Duration
		now        func() time.Time
	}
)

// DefaultSubject is the subject of sessions authenticated by a bare store token.
const DefaultSubject = "admin"

// NewManager returns a new manager.
// An empty signingKey disables JWTs and the store token is used as bearer.
func NewManager(verifier Verifier, signingKey []byte, ttl time.Duration) Manager {
	return &manager{
		verifier:   verifier,
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}
}

func (m *manager) JWTSigningKey() []byte {
	if len(m.signingKey) == 0 {
		return nil
	}
	return m.signingKey
}

func (m *manager) NewClaims() jwt.Claims {
	return new(Claims)
}

func (m *manager) Issue(login model.Login, email string) (string, error) {
	if !login.Success || login.Token == "" {
		return "", errors.New("could not issue a session for a failed login")
	}

	if m.JWTSigningKey() == nil {
		return login.Token, nil
	}

	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   Issuer,
			Subject:  email,
			ID:       SecureToken(24),
			IssuedAt: jwt.NewNumericDate(now),
		},
		Session: login.Token,
	}
	if m.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	return token, errors.Wrap(err, "could not sign session token")
}

func (m *manager) Validate(ctx context.Context, token any) (string, error) {
	var (
		subject = DefaultSubject
		sid     string
	)

	switch tk := token.(type) {
	case string:
		if m.JWTSigningKey() != nil {
			return "", invalid()
		}
		sid = tk
	case *jwt.Token:
		claims, ok := tk.Claims.(*Claims)
		if !ok {
			panic("token implementation has wrong type of claims")
		}
		if claims.Issuer != Issuer {
			return "", invalid()
		}
		subject = claims.Subject
		sid = claims.Session
	default:
		return "", invalid()
	}

	ok, err := m.verifier.Authorized(ctx, sid)
	if err != nil {
		return "", errors.Wrap(err, "could not validate session")
	}
	if !ok {
		return "", invalid()
	}
	return subject, nil
}

func invalid() error {
	return cmserror.NewWithTagCode(http.StatusUnauthorized, "invalid-auth", "Invalid login credentials.")
}
