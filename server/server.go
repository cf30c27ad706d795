// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const DefaultAddress = "127.0.0.1:9650"

var _ Server = (*server)(nil)

type PathAdder interface {
	// AddRoute registers a route to a handler.
	AddRoute(handler http.Handler, path string, methods ...string)
}

// Server maintains the HTTP router
type Server interface {
	PathAdder
	// Dispatch serves until Shutdown is called
	Dispatch() error
	// Shutdown this server
	Shutdown() error
}

type Config struct {
	// An empty Address disables the server.
	Address           string        `json:"address" yaml:"address"`
	AllowedOrigins    []string      `json:"allowedOrigins" yaml:"allowedOrigins"`
	ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`
}

func NewDefaultConfig() Config {
	return Config{
		Address:           DefaultAddress,
		AllowedOrigins:    []string{"*"},
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

type server struct {
	// log this server writes to
	log logging.Logger

	shutdownTimeout time.Duration

	// Maps paths to handlers
	router *mux.Router

	srv *http.Server

	// Listener used to serve traffic
	listener net.Listener
}

// New returns an instance of a Server.
func New(log logging.Logger, listener net.Listener, config Config) Server {
	router := mux.NewRouter()
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowCredentials: true,
	}).Handler(router)
	handler := gziphandler.GzipHandler(corsHandler)

	log.Info("API created",
		zap.Stringer("address", listener.Addr()),
		zap.Strings("allowedOrigins", config.AllowedOrigins),
	)

	return &server{
		log:             log,
		shutdownTimeout: config.ShutdownTimeout,
		router:          router,
		srv: &http.Server{
			Handler:           handler,
			ReadTimeout:       config.ReadTimeout,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
			WriteTimeout:      config.WriteTimeout,
			IdleTimeout:       config.IdleTimeout,
		},
		listener: listener,
	}
}

// Dispatch returns [http.ErrServerClosed] after Shutdown.
func (s *server) Dispatch() error {
	return s.srv.Serve(s.listener)
}

func (s *server) AddRoute(handler http.Handler, path string, methods ...string) {
	s.log.Info("adding route",
		zap.String("path", path),
		zap.Strings("methods", methods),
	)
	route := s.router.Handle(path, handler)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// If shutdown times out, make sure the server is still shutdown.
	_ = s.srv.Close()
	return err
}
