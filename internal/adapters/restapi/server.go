package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"evm_tx_encoder/internal/config"
	"evm_tx_encoder/internal/logger"
	"evm_tx_encoder/pkg/txencoder"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logger.AppLogger
}

// NewServer creates a new instance of the REST API server.
func NewServer(service txencoder.Encoder, appLogger logger.AppLogger, cfg *config.ServerConfig) (*Server, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil for Server")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for Server")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil for Server")
	}

	h, err := NewHTTPHandler(service, appLogger, cfg.MaxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handler: %w", err)
	}

	smux := setupRouter(h, cfg.Port)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           smux,
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
	}

	return &Server{
		httpServer: server,
		logger:     appLogger,
	}, nil
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server ListenAndServe error", "error", err)
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	s.logger.Info("HTTP server stopped gracefully.")
	return nil
}

// setupRouter creates a new ServeMux and registers all API handlers.
func setupRouter(h *HTTPHandler, port string) *http.ServeMux {
	smux := http.NewServeMux()

	smux.HandleFunc("/health", h.HandleHealth)
	smux.HandleFunc("/encode/unsigned", h.HandleEncodeUnsigned)
	smux.HandleFunc("/encode/signed", h.HandleEncodeSigned)
	smux.HandleFunc("/import", h.HandleImport)
	smux.HandleFunc("/decode", h.HandleDecode)

	h.logger.Info("-------------------------------------")
	h.logger.Info("API Server starting", "address", port)
	h.logger.Info("Available Endpoints:")
	h.logger.Info("  GET  /health")
	h.logger.Info("  POST /encode/unsigned (Body: {'chainId':'1','nonce':'0',...})")
	h.logger.Info("  POST /encode/signed   (Body: {'transaction':{...},'signature':{'v','r','s'}})")
	h.logger.Info("  POST /import          (Body: {'fields':{...},'signature':{...}?})")
	h.logger.Info("  POST /decode          (Body: {'payload':'0x02...'})")
	h.logger.Info("-------------------------------------")

	return smux
}
