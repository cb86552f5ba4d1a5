// Package stubapi is a local stand-in for the hosted backend: the same
// resource routes and the same response envelope, backed by in-memory
// tables. It exists for offline development and for the test suite.
package stubapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/sistemaclass/classcli/core"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		DB             *DB
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.DB == nil {
		opts.DB = Open()
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	debug := core.Conf.GetBool("debug")

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || core.Conf.GetBool("testMode")) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = envelopeHTTPErrorHandler
	s.app.Debug = debug
	s.app.HideBanner = true

	s.app.GET("/health", health)

	registerResourceAPI(s.app.Group("/api"), s.opts.DB)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"ok": true, "data": echo.Map{"status": "ok"}})
}

// envelopeHTTPErrorHandler renders every error in the API's failure envelope
// so clients can always parse the body the same way.
func envelopeHTTPErrorHandler(err error, ctx echo.Context) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)

	if herr, ok := err.(*echo.HTTPError); ok {
		code = herr.Code
		if m, ok := herr.Message.(string); ok {
			message = m
		}
	}

	if !ctx.Response().Committed {
		if jErr := failJSON(ctx, code, message, nil); jErr != nil {
			ctx.Echo().Logger.Error(jErr)
		}
	}
}
