package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/cmserror"
	"github.com/mdouchement/novatech/internal/model"
	"github.com/mdouchement/novatech/internal/server/serializer"
	"github.com/mdouchement/novatech/internal/server/session"
	"github.com/mdouchement/novatech/internal/store"
)

// auth contains all authentication handlers.
type auth struct {
	store    store.Content
	sessions session.Manager
}

type loginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

///// Login
////
//

// Login handler checks the admin credentials and hands out a bearer token.
func (h *auth) Login(c echo.Context) error {
	var params loginParams
	if err := c.Bind(&params); err != nil {
		return c.JSON(http.StatusUnauthorized, cmserror.New("Could not get credentials."))
	}

	login, err := h.store.AdminLogin(c.Request().Context(), params.Email, params.Password)
	if err != nil {
		return err
	}
	if !login.Success {
		return c.JSON(http.StatusUnauthorized, login)
	}

	token, err := h.sessions.Issue(login, params.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, model.Login{Success: true, Token: token})
}

///// Logout
////
//

// Logout handler terminates the admin session, every issued token is revoked.
func (h *auth) Logout(c echo.Context) error {
	if err := h.store.AdminLogout(c.Request().Context()); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, serializer.Success())
}
