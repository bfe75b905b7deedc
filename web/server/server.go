package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// MaxImageSize bounds the width and height of web renders
const MaxImageSize = 2048

// Server handles web requests for the ray tracer
type Server struct {
	config    *config.Config
	logger    zerolog.Logger
	scenesDir string
	router    *mux.Router
}

// NewServer creates a new web server; scenesDir holds the YAML scene files it can serve
func NewServer(cfg *config.Config, logger zerolog.Logger, scenesDir string) *Server {
	s := &Server{config: cfg, logger: logger, scenesDir: scenesDir, router: mux.NewRouter()}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/scenes", s.handleScenes).Methods(http.MethodGet)
	api.HandleFunc("/render", s.handleRender).Methods(http.MethodGet)
	api.HandleFunc("/inspect", s.handleInspect).Methods(http.MethodGet)
	s.router.Use(s.logRequests)

	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Int("port", s.config.Server.Port).Msg("Starting web server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Dur("elapsed", time.Since(start)).Msg("request")
	})
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files on disk
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := scene.ListAll(s.scenesDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, scenes)
}

// loadScene resolves a built-in scene name or a "file:<name>" scene from the scenes directory
func (s *Server) loadScene(name string) (*scene.Setup, error) {
	if file, ok := strings.CutPrefix(name, "file:"); ok {
		files, err := scene.Discover(s.scenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range files {
			if info.ID == name {
				return scene.LoadFile(info.FilePath)
			}
		}
		return nil, errorsmod.Wrapf(core.ErrUnknownScene, "scene file %q", file)
	}
	return scene.Create(name)
}

// statusFor maps scene and parameter errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownScene):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), core.IsConstructionError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrBadRequest marks query parameters the server cannot use
var ErrBadRequest = errorsmod.Register(core.Codespace, 50, "bad request")

// intParam reads an integer query parameter within [min, max], falling back to def when absent
func intParam(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errorsmod.Wrapf(ErrBadRequest, "%s must be an integer", name)
	}
	if v < min || v > max {
		return 0, errorsmod.Wrapf(ErrBadRequest, "%s must be in [%d, %d]", name, min, max)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
