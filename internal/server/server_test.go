package server_test

import (
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/mdouchement/novatech/internal/database"
	"github.com/mdouchement/novatech/internal/server"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"
)

func TestRequestHome(t *testing.T) {
	engine, _, cleanup := setup()
	defer cleanup()

	gofight.New().GET("/").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestVersion(t *testing.T) {
	engine, _, cleanup := setup()
	defer cleanup()

	gofight.New().GET("/version").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)
		assert.JSONEq(t, `{"version":"test"}`, r.Body.String())
	})
}

func TestRequestUnknownRoute(t *testing.T) {
	engine, _, cleanup := setup()
	defer cleanup()

	gofight.New().GET("/api/unknown").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"message":"Not Found"}}`, r.Body.String())
	})
}

func TestRequestStorageUnavailable(t *testing.T) {
	engine, _, cleanup := setup()
	cleanup() // Closes the database.

	gofight.New().GET("/api/projects").Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusServiceUnavailable, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"storage_unavailable","message":"Storage unavailable"}}`, r.Body.String())
	})
}

func setup(options ...func(*server.IOC)) (engine *echo.Echo, ioc server.IOC, cleanup func()) {
	tmpfile, err := os.CreateTemp("", "novatech.*.db")
	if err != nil {
		panic(err)
	}
	filename := tmpfile.Name()
	tmpfile.Close()

	err = database.StormInit(filename, database.DefaultCodec)
	if err != nil {
		panic(err)
	}

	db, err := database.StormOpen(filename, database.DefaultCodec, 0)
	if err != nil {
		panic(err)
	}

	ioc = server.IOC{
		Version:  "test",
		Store:    store.New(db, store.Config{}),
		TokenTTL: time.Hour,
	}
	for _, option := range options {
		option(&ioc)
	}
	engine = server.EchoEngine(ioc)

	return engine, ioc, func() {
		db.Close()
		os.RemoveAll(filename)
	}
}

func withJWT(ioc *server.IOC) {
	ioc.SigningKey = []byte("00000000000000000000000000000000")
}

func login(t *testing.T, engine *echo.Echo) gofight.H {
	var token string

	gofight.New().POST("/api/admin/login").
		SetJSON(gofight.D{
			"email":    store.DefaultCredentials.Email,
			"password": store.DefaultCredentials.Password,
		}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			require.Equal(t, http.StatusOK, r.Code)

			v, err := fastjson.ParseBytes(r.Body.Bytes())
			require.NoError(t, err)
			require.True(t, v.GetBool("success"))
			token = string(v.GetStringBytes("token"))
		})

	return gofight.H{
		"Authorization": "Bearer " + token,
	}
}
