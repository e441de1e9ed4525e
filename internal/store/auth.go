package store

import (
	"context"
	"crypto/subtle"

	argon2 "github.com/mdouchement/simple-argon2"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/pkg/errors"
)

// Token is the opaque session token handed out on successful login.
const Token = "mock-jwt-token-xyz"

// DefaultCredentials is the built-in admin account.
var DefaultCredentials = Credentials{
	Email:    "gouravmenaria667@gmail.com",
	Password: "gouravmenaria667@2210",
}

// Credentials is the single admin account allowed to log in.
// When PasswordHash (argon2) is set, Password is ignored.
type Credentials struct {
	Email        string
	Password     string
	PasswordHash string
}

// Match returns true if the given email and password match the credentials.
func (c Credentials) Match(email, password string) bool {
	ok := secureCompare(c.Email, email)

	if c.PasswordHash != "" {
		err := argon2.CompareHashAndPasswordString(c.PasswordHash, password)
		return ok && err == nil
	}
	return secureCompare(c.Password, password) && ok
}

// AdminLogin checks the given credentials.
// A failed login is not an error, it returns an unsuccessful Login.
func (s *Store) AdminLogin(ctx context.Context, email, password string) (model.Login, error) {
	if err := s.wait(ctx); err != nil {
		return model.Login{}, err
	}

	if !s.credentials.Match(email, password) {
		s.log.WithField("email", email).Info("admin login rejected")
		return model.Login{Success: false, Token: ""}, nil
	}

	mu := s.lock(model.AdminTokenKey)
	mu.Lock()
	defer mu.Unlock()

	if err := s.db.Set(model.AdminTokenKey, []byte(Token)); err != nil {
		return model.Login{}, s.storageError(err, model.AdminTokenKey)
	}

	s.log.WithField("email", email).Info("admin logged in")
	return model.Login{Success: true, Token: Token}, nil
}

// AdminLogout terminates the admin session.
func (s *Store) AdminLogout(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	mu := s.lock(model.AdminTokenKey)
	mu.Lock()
	defer mu.Unlock()

	if err := s.db.Remove(model.AdminTokenKey); err != nil {
		return s.storageError(err, model.AdminTokenKey)
	}

	s.log.Info("admin logged out")
	return nil
}

// Authorized returns true if token matches the current admin session.
// It does not wait for the simulated latency.
func (s *Store) Authorized(ctx context.Context, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	current, err := s.db.Get(model.AdminTokenKey)
	if err != nil {
		if s.db.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Wrap(s.storageError(err, model.AdminTokenKey), "could not get admin session")
	}

	return token != "" && secureCompare(string(current), token), nil
}

// secureCompare compares the givens strings in a constant time.
func secureCompare(s1, s2 string) bool {
	return subtle.ConstantTimeCompare([]byte(s1), []byte(s2)) == 1
}
