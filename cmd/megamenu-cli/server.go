package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	megamenu "github.com/goliatone/go-megamenu"
	"github.com/goliatone/go-megamenu/pkg/orchestrator"
	"github.com/goliatone/go-megamenu/pkg/placeholder/pagehost"
)

type server struct {
	cfg    config
	orch   *orchestrator.Orchestrator
	page   *pagehost.Page
	logger zerolog.Logger
}

func newServer(cfg config, orch *orchestrator.Orchestrator, page *pagehost.Page, logger zerolog.Logger) *server {
	return &server{cfg: cfg, orch: orch, page: page, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(megamenu.RuntimeAssetsFS())))
	return mux
}

func (s *server) handlePage(w http.ResponseWriter, r *http.Request) {
	document, err := renderDocument(s.page, false)
	if err != nil {
		s.logger.Error().Err(err).Msg("render document")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(document))
}

// handleRefresh drops the cached tree and asks the host to re-render, the
// same path a host availability change takes.
func (s *server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.cfg.TermSet != "" {
		if err := s.orch.Invalidate(r.Context(), s.cfg.TermSet, s.cfg.Locale); err != nil {
			s.logger.Error().Err(err).Msg("invalidate cache")
			http.Error(w, "invalidate failed", http.StatusInternalServerError)
			return
		}
	}
	s.page.Notify()
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) listen(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("serving menu")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
