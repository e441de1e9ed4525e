package middlewares

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/server/session"
)

const (
	// CurrentAdminContextKey is the key to retrieve the current_admin from echo.Context.
	CurrentAdminContextKey = "current_admin"
	// jwtContextKey is where echo-jwt stores the parsed token.
	jwtContextKey = "session_jwt"
)

// Session returns a bearer auth middleware.
// It stores current_admin into echo.Context.
func Session(m session.Manager) echo.MiddlewareFunc {
	var check echo.MiddlewareFunc
	if key := m.JWTSigningKey(); key != nil {
		check = echojwt.WithConfig(echojwt.Config{
			SigningKey:    key,
			SigningMethod: echojwt.AlgorithmHS256,
			ContextKey:    jwtContextKey,
			NewClaimsFunc: func(echo.Context) jwt.Claims {
				return m.NewClaims()
			},
		})
	}

	fake := func(echo.Context) error {
		return nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			authorization := c.Request().Header.Get(echo.HeaderAuthorization)
			var tk any = token(authorization)

			if tk == "" {
				return unauthorized(c)
			}

			if check != nil {
				err = check(fake)(c) // Check JWT validity according its claims.
				if err != nil {
					return unauthorized(c)
				}
				tk = c.Get(jwtContextKey)
			}

			// Validate the persisted admin session and store current_admin for handlers.
			subject, err := m.Validate(c.Request().Context(), tk)
			if err != nil {
				return err
			}

			c.Set(CurrentAdminContextKey, subject)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"error": echo.Map{
			"tag":     "invalid-auth",
			"message": "Invalid login credentials.",
		},
	})
}

func token(authorization string) string {
	parts := strings.Split(authorization, " ")
	if strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
