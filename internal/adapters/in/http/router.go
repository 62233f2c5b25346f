package http

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"

	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BodyLimit caps request bodies at one megabyte.
const BodyLimit = "1M"

// RouterConfig configures NewRouter.
type RouterConfig struct {
	// StaticDir holds waiter.html and kitchen.html. Empty disables static files.
	StaticDir string
	LogLevel  log.Lvl
	Logger    *slog.Logger
}

// NewRouter builds the echo instance serving the API, the stream, the API
// description and the static pages.
func NewRouter(server *Server, cfg RouterConfig) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.LogLevel)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return kernel.NewUUID().String() },
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(middleware.BodyLimit(BodyLimit))
	e.Use(requestLogger(logger.With("component", "http")))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/api/openapi.json", func(c echo.Context) error {
		doc, err := servers.GetSwagger()
		if err != nil {
			return server.respondError(c, err)
		}
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	if cfg.StaticDir != "" {
		e.Static("/public", cfg.StaticDir)
		e.GET("/", func(c echo.Context) error {
			return c.File(filepath.Join(cfg.StaticDir, "waiter.html"))
		})
		e.GET("/kitchen", func(c echo.Context) error {
			return c.File(filepath.Join(cfg.StaticDir, "kitchen.html"))
		})
	}

	return e
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				level = slog.LevelError
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
