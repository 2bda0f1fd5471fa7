package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/deskremote/internal/remote"
)

const (
	DefaultAddr       = ":" + remote.DefaultPort
	initialVolume     = 50
	initialBrightness = 0.5
	shutdownTimeout   = 5 * time.Second
)

// Sensors reads local telemetry.
type Sensors interface {
	Read(ctx context.Context) (remote.SystemInfo, error)
}

// Power performs a power action.
type Power interface {
	Perform(ctx context.Context, kind remote.ActionKind) error
}

// Options configure a Server. Nil Sensors or Power use the system
// implementations; Power defaults to a dry run.
type Options struct {
	Sensors Sensors
	Power   Power
	Logger  zerolog.Logger
}

// Server implements the control HTTP API over local readings. Volume and
// brightness are held in memory.
type Server struct {
	sensors Sensors
	power   Power
	log     zerolog.Logger

	mu         sync.Mutex
	volume     int
	brightness float64
}

func New(opts Options) *Server {
	if opts.Sensors == nil {
		opts.Sensors = SystemSensors{}
	}
	if opts.Power == nil {
		opts.Power = NewPower(false, opts.Logger)
	}
	return &Server{
		sensors:    opts.Sensors,
		power:      opts.Power,
		log:        opts.Logger.With().Str("component", "devserver").Logger(),
		volume:     initialVolume,
		brightness: initialBrightness,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /info", s.handleInfo)
	mux.HandleFunc("GET /volume", s.handleGetVolume)
	mux.HandleFunc("POST /volume", s.handleSetVolume)
	mux.HandleFunc("GET /brightness", s.handleGetBrightness)
	mux.HandleFunc("POST /brightness", s.handleSetBrightness)
	mux.HandleFunc("POST /action", s.handleAction)
	return s.logRequests(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("control server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info().Msg("control server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, remote.StatusResponse{OK: true, Message: "Server is running"})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.sensors.Read(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("read sensors")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleGetVolume(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	v := s.volume
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, remote.VolumeBody{Volume: v})
}

func (s *Server) handleSetVolume(w http.ResponseWriter, r *http.Request) {
	var body remote.VolumeBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid volume")
		return
	}
	v := max(0, min(100, body.Volume))
	s.mu.Lock()
	s.volume = v
	s.mu.Unlock()
	s.log.Info().Int("volume", v).Msg("volume set")
	writeJSON(w, http.StatusOK, remote.SuccessResponse{Success: true})
}

func (s *Server) handleGetBrightness(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	b := s.brightness
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, remote.BrightnessBody{Brightness: b})
}

func (s *Server) handleSetBrightness(w http.ResponseWriter, r *http.Request) {
	var body remote.BrightnessBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || math.IsNaN(body.Brightness) {
		writeError(w, http.StatusBadRequest, "Invalid brightness")
		return
	}
	b := math.Max(0, math.Min(1, body.Brightness))
	s.mu.Lock()
	s.brightness = b
	s.mu.Unlock()
	s.log.Info().Float64("brightness", b).Msg("brightness set")
	writeJSON(w, http.StatusOK, remote.SuccessResponse{Success: true})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var body remote.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Type.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if err := s.power.Perform(r.Context(), body.Type); err != nil {
		s.log.Error().Err(err).Str("action", string(body.Type)).Msg("action failed")
		writeJSON(w, http.StatusOK, remote.ActionResult{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, remote.ActionResult{Success: true})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
