package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gridmcts/communication"
	"gridmcts/game"
	"gridmcts/meta"
	"gridmcts/searcher"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

type Option func(s *Server)

// WithMaxRounds caps the rounds a single request may ask for.
func WithMaxRounds(rounds int) Option {
	return func(s *Server) {
		if rounds > 0 {
			s.maxRounds = rounds
		}
	}
}

// WithTick sets the interval at which live analyses are stepped.
func WithTick(interval time.Duration) Option {
	return func(s *Server) {
		if interval > 0 {
			s.tick = interval
		}
	}
}

// Server exposes position analysis over HTTP and websockets.
type Server struct {
	router    chi.Router
	maxRounds int
	tick      time.Duration
}

func NewServer(options ...Option) *Server {
	s := &Server{
		maxRounds: meta.ANALYSIS_MAX_ROUNDS,
		tick:      meta.ANALYSIS_TICK,
	}
	for _, option := range options {
		option(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/variants", s.handleVariants)
	r.Post("/api/policy", s.handlePolicy)
	r.Post("/api/play", s.handlePlay)
	r.Get("/ws/analysis", s.handleAnalysis)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("analysis server listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("analysis server stopped")
	return nil
}

func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	variants := []communication.VariantInfo{}
	for _, v := range game.Variants() {
		variants = append(variants, communication.VariantInfo{Name: v.Name, Width: v.Width, Height: v.Height})
	}
	writeJSON(w, http.StatusOK, variants)
}

func (s *Server) handlePolicy(w http.ResponseWriter, r *http.Request) {
	var req communication.PolicyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := s.Policy(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Policy runs a complete search for req. It implements communication.Analyzer.
func (s *Server) Policy(ctx context.Context, req communication.PolicyRequest) (communication.PolicyResponse, error) {
	state, err := req.State.Decode()
	if err != nil {
		return communication.PolicyResponse{}, err
	}
	mcts, err := s.newSearch(req, meta.ROUNDS)
	if err != nil {
		return communication.PolicyResponse{}, err
	}
	values, metric, err := mcts.Search(ctx, state, state.Player())
	if err != nil {
		return communication.PolicyResponse{}, err
	}
	log.Debug().Msgf("analysed %s position with %d rounds in %s", state.Variant().Name, metric.Rounds, metric.Duration)
	return communication.EncodePolicy(values), nil
}

func (s *Server) newSearch(req communication.PolicyRequest, defaultRounds int) (*searcher.GridMCTS, error) {
	rounds := req.Rounds
	if rounds <= 0 {
		rounds = defaultRounds
	}
	if rounds > s.maxRounds {
		return nil, fmt.Errorf("%w: %d rounds requested, at most %d allowed", errBadRequest, rounds, s.maxRounds)
	}

	options := []searcher.Option{searcher.WithRounds(rounds), searcher.WithMetrics()}
	if req.Exploration != nil {
		options = append(options, searcher.WithExploration(*req.Exploration))
	}
	if req.Seed != nil {
		options = append(options, searcher.WithSeed(*req.Seed))
	}
	return searcher.NewGridMCTS(req.Heuristic, req.Expansion, options...)
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req communication.PlayRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	state, err := req.State.Decode()
	if err != nil {
		writeError(w, err)
		return
	}
	next, err := state.PlayChecked(req.Move)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, communication.PlayResponse{State: communication.EncodeState(next)})
}

var errBadRequest = errors.New("bad request")

func statusOf(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrUnknownVariant),
		errors.Is(err, game.ErrMalformedBoard),
		errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, searcher.ErrUnknownComponent):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, communication.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
