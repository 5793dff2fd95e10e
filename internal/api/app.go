package api

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/npezzotti/go-messageboard/internal/config"
	"github.com/npezzotti/go-messageboard/internal/database"
	"github.com/npezzotti/go-messageboard/internal/stats"
	"github.com/npezzotti/go-messageboard/internal/token"
)

type MessageBoardApp struct {
	log    *log.Logger
	db     database.MessageBoardRepository
	tokens *token.Issuer
	stats  stats.StatsProvider
	mux    *http.Server
}

func NewMessageBoardApp(mux *http.ServeMux, logger *log.Logger, db database.MessageBoardRepository, issuer *token.Issuer, statsProvider stats.StatsProvider, cfg *config.Config) *MessageBoardApp {
	s := &MessageBoardApp{
		log:    logger,
		db:     db,
		tokens: issuer,
		stats:  statsProvider,
	}

	for _, metric := range []string{
		stats.TotalRegistrations,
		stats.TotalLogins,
		stats.AuthRejections,
		stats.MessagesPosted,
	} {
		statsProvider.RegisterMetric(metric)
	}

	mux.HandleFunc("POST /register", s.register)
	mux.HandleFunc("POST /login", s.login)
	mux.Handle("GET /profile", s.authMiddleware(s.getProfile))
	mux.Handle("PUT /profile", s.authMiddleware(s.updateProfile))
	mux.Handle("GET /messages", s.authMiddleware(s.listMessages))
	mux.Handle("POST /messages", s.authMiddleware(s.createMessage))
	mux.HandleFunc("GET /healthz", s.healthCheck)

	h := handlers.CORS(
		handlers.MaxAge(3600),
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept", "Authorization"}),
	)(mux)

	h = handlers.CombinedLoggingHandler(logger.Writer(), h)
	h = s.errorHandler(h)

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: h,
	}

	s.mux = srv
	return s
}

func (s *MessageBoardApp) Start() error {
	s.log.Printf("starting server on %s\n", s.mux.Addr)
	return s.mux.ListenAndServe()
}

func (s *MessageBoardApp) Shutdown(ctx context.Context) error {
	s.log.Println("shutting down HTTP server...")
	if err := s.mux.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
