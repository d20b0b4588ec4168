// Package httpapi exposes the service layer over HTTP. It owns the thin
// glue the core treats as external: route wiring, the session cookie,
// multipart upload plumbing and blob writes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filehost/internal/logging"
	"github.com/dmitrijs2005/filehost/internal/server/blobs"
	"github.com/dmitrijs2005/filehost/internal/server/config"
	"github.com/dmitrijs2005/filehost/internal/server/services"
)

type Server struct {
	address         string
	logger          logging.Logger
	users           *services.UserService
	files           *services.FileService
	apps            *services.AppService
	blobs           *blobs.Store
	secretKey       []byte
	sessionValidity time.Duration
	maxFileUpload   int64
	maxAppUpload    int64
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, fs *services.FileService, as *services.AppService, bs *blobs.Store) *Server {
	return &Server{
		address:         cfg.EndpointAddr,
		logger:          l.With("module", "http_server"),
		users:           us,
		files:           fs,
		apps:            as,
		blobs:           bs,
		secretKey:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		maxFileUpload:   cfg.MaxFileUploadSize,
		maxAppUpload:    cfg.MaxAppUploadSize,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.routes()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/check", s.handleAuthCheck)

	mux.HandleFunc("POST /api/files/upload", s.requireAuth(s.handleFileUpload))
	mux.HandleFunc("GET /api/files/my-files", s.requireAuth(s.handleMyFiles))
	mux.HandleFunc("GET /api/files/public", s.handlePublicFiles)
	mux.HandleFunc("PUT /api/files/{id}/privacy", s.requireAuth(s.handleFilePrivacy))
	mux.HandleFunc("GET /api/files/download/{id}", s.handleFileDownload)
	mux.HandleFunc("DELETE /api/files/{id}", s.requireAuth(s.handleFileDelete))

	mux.HandleFunc("POST /api/apps/upload", s.requireAdmin(s.handleAppUpload))
	mux.HandleFunc("GET /api/apps", s.handleApps)
	mux.HandleFunc("GET /api/apps/download/{id}", s.handleAppDownload)
	mux.HandleFunc("DELETE /api/apps/{id}", s.requireAdmin(s.handleAppDelete))

	mux.HandleFunc("GET /api/stats", s.requireAuth(s.handleStats))

	return mux
}
