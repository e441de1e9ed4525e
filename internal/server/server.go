package server

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mdouchement/novatech/internal/logger"
	"github.com/mdouchement/novatech/internal/server/middlewares"
	"github.com/mdouchement/novatech/internal/server/session"
	"github.com/mdouchement/novatech/internal/store"
	"github.com/sirupsen/logrus"
)

// An IOC is an Iversion Of Control pattern used to init the server package.
type IOC struct {
	Version string
	Store   *store.Store
	Logger  logrus.FieldLogger
	// JWT params, an empty SigningKey hands out the store token as bearer.
	SigningKey []byte
	TokenTTL   time.Duration
	// MaxUploadSize defaults to DefaultMaxUploadSize.
	MaxUploadSize int64
}

// EchoEngine instantiates the wep server.
func EchoEngine(ctrl IOC) *echo.Echo {
	if ctrl.Logger == nil {
		ctrl.Logger = logger.Discard()
	}
	if ctrl.MaxUploadSize <= 0 {
		ctrl.MaxUploadSize = DefaultMaxUploadSize
	}

	engine := echo.New()
	engine.HideBanner = true
	engine.HidePort = true
	engine.Use(middleware.Recover())
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))
	engine.Use(middleware.Gzip())

	engine.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:        true,
		LogMethod:        true,
		LogURI:           true,
		LogLatency:       true,
		LogContentLength: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctrl.Logger.Infof("[%d] %s %s (%s) %s", v.Status, v.Method, v.URI, v.ContentLength, v.Latency)
			return nil
		},
	}))
	engine.Binder = middlewares.NewBinder()
	// Error handler
	engine.HTTPErrorHandler = middlewares.HTTPErrorHandler(ctrl.Logger)

	engine.Pre(middleware.Rewrite(map[string]string{
		"/": "/version",
	}))

	////////////
	// Router //
	////////////

	sessions := session.NewManager(ctrl.Store, ctrl.SigningKey, ctrl.TokenTTL)

	router := engine.Group("")
	api := router.Group("/api")
	restricted := api.Group("/admin")
	restricted.Use(middlewares.Session(sessions))

	// generic handlers
	//
	router.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"version": ctrl.Version,
		})
	})

	//
	// content handlers
	//
	projects := projectResource(ctrl.Store)
	api.GET("/projects", projects.List)
	restricted.POST("/projects", projects.Create)
	restricted.PUT("/projects/:id", projects.Update)
	restricted.DELETE("/projects/:id", projects.Delete)

	services := serviceResource(ctrl.Store)
	api.GET("/services", services.List)
	restricted.POST("/services", services.Create)
	restricted.PUT("/services/:id", services.Update)
	restricted.DELETE("/services/:id", services.Delete)

	stack := techStackResource(ctrl.Store)
	api.GET("/techstack", stack.List)
	api.GET("/techstack/grouped", techStackGrouped(ctrl.Store))
	restricted.POST("/techstack", stack.Create)
	restricted.PUT("/techstack/:id", stack.Update)
	restricted.DELETE("/techstack/:id", stack.Delete)

	//
	// lead handlers
	//
	lead := &lead{
		store: ctrl.Store,
	}
	api.POST("/leads", lead.Submit)
	restricted.GET("/leads", lead.List)
	restricted.DELETE("/leads/:id", lead.Delete)

	//
	// auth handlers
	//
	auth := &auth{
		store:    ctrl.Store,
		sessions: sessions,
	}
	api.POST("/admin/login", auth.Login)
	restricted.DELETE("/session", auth.Logout)

	//
	// upload handlers
	//
	upload := &upload{
		store:   ctrl.Store,
		maxSize: ctrl.MaxUploadSize,
	}
	restricted.POST("/uploads", upload.Upload)

	return engine
}

// PrintRoutes prints the Echo engin exposed routes.
func PrintRoutes(e *echo.Echo) {
	ignored := map[string]bool{
		"":   true,
		".":  true,
		"/*": true,
	}

	routes := e.Routes()
	sort.Slice(routes, func(i int, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	fmt.Println("Routes:")
	for _, route := range routes {
		if ignored[route.Path] || route.Method == echo.RouteNotFound {
			continue
		}
		fmt.Printf("%6s %s\n", route.Method, route.Path)
	}
}
