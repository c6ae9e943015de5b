package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/vitos/trade_text_builder/internal/domain"
	"github.com/vitos/trade_text_builder/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	router   *http.ServeMux
	server   *http.Server
	service  *usecase.TradeService
	settings domain.Settings
	logger   *zap.Logger
}

func NewServer(
	port int,
	service *usecase.TradeService,
	settings domain.Settings,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:   http.NewServeMux(),
		service:  service,
		settings: settings,
		logger:   logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	// Form
	s.router.HandleFunc("GET /{$}", s.handleForm)
	s.router.HandleFunc("POST /generate", s.handleGenerate)

	// Text file
	s.router.HandleFunc("GET /download", s.handleDownload)

	// JSON API
	s.router.HandleFunc("POST /api/levels", s.handleLevelsJSON)

	// Status
	s.router.HandleFunc("GET /status", s.handleStatus)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
