// Package server defines the core Server struct that composes the
// app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger
//   - document store connection and record access layer
//   - newsletter credential resolution (including the one-time
//     secret-store fetch behind a readiness gate)
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the
// application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/inkpress/blog-backend/internal/config"
	"github.com/inkpress/blog-backend/internal/database"
	"github.com/inkpress/blog-backend/internal/lib/newsletter"
	"github.com/inkpress/blog-backend/internal/lib/secrets"
	"github.com/inkpress/blog-backend/internal/store"
	"github.com/rs/zerolog"
)

// secretFetchTimeout bounds the one-time startup secret fetch.
const secretFetchTimeout = 30 * time.Second

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself; it holds the config, the logger,
// the document store connection, the record access layer, and the
// newsletter credential provider, plus an internal *http.Server used
// to listen and serve requests.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// DB holds the document store connection.
	DB *database.Database

	// Store is the record access layer over the document store.
	Store store.Store

	// NewsletterCreds resolves subscription provider credentials.
	NewsletterCreds newsletter.CredentialsProvider

	// httpServer is the standard library HTTP server instance.
	// It is configured in SetupHTTPServer and started in Start().
	httpServer *http.Server
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server directly; that is done in
// SetupHTTPServer + Start.
//
// Initialization performed:
//   - document store connection (with startup ping)
//   - record access layer over that connection
//   - newsletter credential provider; with the "secrets" policy the
//     fetch runs in the background and requests wait on the gate
func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	db, err := database.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize document store: %w", err)
	}

	return &Server{
		Config:          cfg,
		Logger:          logger,
		DB:              db,
		Store:           store.NewMongoStore(db.Database),
		NewsletterCreds: newCredentialsProvider(cfg, logger),
	}, nil
}

// newCredentialsProvider builds the credential provider selected by
// config. The secret-backed variant starts its one-time fetch here and
// resolves the readiness gate when it completes.
func newCredentialsProvider(cfg *config.Config, logger *zerolog.Logger) newsletter.CredentialsProvider {
	if cfg.Newsletter.CredentialSource == config.CredentialSourceStatic {
		return newsletter.NewStaticProvider(cfg.Newsletter.APIKey, cfg.Newsletter.AudienceID)
	}

	gate := newsletter.NewGateProvider()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), secretFetchTimeout)
		defer cancel()

		payload, err := secrets.Fetch(ctx, cfg.Newsletter.SecretRegion, cfg.Newsletter.SecretName)
		if err != nil {
			logger.Error().Err(err).Msg("newsletter credential fetch failed")
			gate.Resolve(newsletter.Credentials{}, err)
			return
		}

		creds, err := newsletter.CredentialsFromJSON(payload)
		if err != nil {
			logger.Error().Err(err).Msg("newsletter credential secret is malformed")
			gate.Resolve(newsletter.Credentials{}, err)
			return
		}

		logger.Info().Msg("newsletter credentials resolved")
		gate.Resolve(creds, nil)
	}()

	return gate
}

// SetupHTTPServer configures the internal net/http server.
// The router is passed in as an http.Handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// These timeouts protect against slow clients; config stores seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It requires SetupHTTPServer first and
// blocks until the server stops or errors.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies:
// the HTTP server finishes inflight requests until the ctx deadline,
// then the document store connection is closed.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.DB.Close(ctx); err != nil {
		return fmt.Errorf("failed to close document store connection: %w", err)
	}

	return nil
}
