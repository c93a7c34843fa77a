// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/basiclog/internal/info"
	"github.com/mia-platform/basiclog/logger"
	"github.com/mia-platform/basiclog/logger/middleware"
)

const (
	statusPrefix = "/-/"
	recordsPath  = "/records/:level"
)

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// Server is the Fiber application logging its requests through a Logger.
type Server struct {
	config Config

	app *fiber.App
	log *logger.Logger
}

// record is the body accepted by the records route.
type record struct {
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields"`
}

func NewServer(log *logger.Logger, cfg *Config) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
		Immutable:             true,
	})
	app.Use(middleware.RequestLogger(log, []string{statusPrefix}))

	statusRoutes(app, info.AppName, info.Version)
	app.Post(recordsPath, recordHandler)

	return &Server{
		config: *cfg,
		app:    app,
		log:    log,
	}
}

// App returns the underlying Fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// listen binds the configured address.
func (s *Server) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.config.HTTPHost, strconv.Itoa(s.config.HTTPPort)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return ln, nil
}

func (s *Server) serve(ln net.Listener) error {
	if err := s.app.Listener(ln); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *Server) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

// Run serves until ctx is done and then shuts the server down.
// The address is bound before serving, so a bind failure is returned without
// starting the server and a cancellation is honored even before the first request.
func (s *Server) Run(ctx context.Context) error {
	log := s.log.Bind("component", "server")

	ln, err := s.listen()
	if err != nil {
		log.Error("server not started", logger.ExcInfoKey, err)
		return err
	}
	log.Info("server started", "address", ln.Addr().String())

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.serve(ln)
	}()

	select {
	case err := <-errChan:
		log.Error("server stopped unexpectedly", logger.ExcInfoKey, err)
		return err
	case <-ctx.Done():
	}

	stopErr := s.Stop()
	// serving may not have registered the listener yet; closing it ends the accept loop
	_ = ln.Close()
	if err := <-errChan; err != nil && stopErr == nil {
		stopErr = err
	}
	if stopErr != nil {
		return stopErr
	}

	log.Info("server stopped")
	return nil
}

func statusRoutes(app *fiber.App, name, version string) {
	status := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "OK",
			"name":    name,
			"version": version,
		})
	}

	app.Get(statusPrefix+"healthz", status)
	app.Get(statusPrefix+"ready", status)
}

// recordHandler emits the received record through the request Logger, so the
// record carries the request id as its uuid.
func recordHandler(c *fiber.Ctx) error {
	level, err := logger.ParseLevel(c.Params("level"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, err.Error())
	}

	var body record
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(body.Message) == "" {
		return fiber.NewError(http.StatusBadRequest, "message is required")
	}

	keys := make([]string, 0, len(body.Fields))
	for key := range body.Fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, body.Fields[key])
	}

	logger.FromContext(c.UserContext()).Log(level, body.Message, args...)
	return c.SendStatus(http.StatusNoContent)
}
