// Package server exposes the motion engine to preview clients over a
// websocket: one request in, one synthesized clip out.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/normanking/motionsynth/internal/motion"
	"github.com/normanking/motionsynth/internal/pose"
)

// GenerateRequest is one synthesis request from a preview client. Pose
// may be inline or name a pose from the library; inline wins.
type GenerateRequest struct {
	Motion   string         `json:"motion"`
	PoseName string         `json:"poseName,omitempty"`
	Pose     *pose.Document `json:"pose,omitempty"`
	Config   *requestConfig `json:"config,omitempty"`
}

type requestConfig struct {
	Duration     *float64 `json:"duration,omitempty"`
	FPS          *float64 `json:"fps,omitempty"`
	Frequency    *float64 `json:"frequency,omitempty"`
	Energy       *float64 `json:"energy,omitempty"`
	NoiseScale   *float64 `json:"noiseScale,omitempty"`
	CoreCoupling *float64 `json:"coreCoupling,omitempty"`
	Emotion      *string  `json:"emotion,omitempty"`
	TableLimits  *bool    `json:"tableLimits,omitempty"`
}

// GenerateResponse wraps a synthesized clip or the failure reason.
type GenerateResponse struct {
	ID    string       `json:"id"`
	Clip  *motion.Clip `json:"clip,omitempty"`
	Error string       `json:"error,omitempty"`
}

// Server serves the preview websocket.
type Server struct {
	engine   *motion.Engine
	library  *pose.Library
	defaults motion.Config
	log      zerolog.Logger
	upgrader websocket.Upgrader

	httpSrv *http.Server
}

// New builds a preview server. library may be nil when only inline
// poses are expected.
func New(engine *motion.Engine, library *pose.Library, defaults motion.Config, log zerolog.Logger) *Server {
	return &Server{
		engine:   engine,
		library:  library,
		defaults: defaults,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the server's HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	s.httpSrv = &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()
	s.log.Info().Str("addr", addr).Msg("preview server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	session := uuid.NewString()
	log := s.log.With().Str("session", session).Logger()
	log.Info().Str("remote", r.RemoteAddr).Msg("preview client connected")
	defer func() {
		conn.Close()
		log.Info().Msg("preview client disconnected")
	}()

	for {
		var req GenerateRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}

		resp := s.generate(&req, log)
		if err := conn.WriteJSON(resp); err != nil {
			log.Warn().Err(err).Msg("write failed")
			return
		}
	}
}

func (s *Server) generate(req *GenerateRequest, log zerolog.Logger) GenerateResponse {
	id := uuid.NewString()

	basePose, err := s.resolvePose(req)
	if err != nil {
		log.Warn().Err(err).Msg("pose resolution failed")
		return GenerateResponse{ID: id, Error: err.Error()}
	}

	cfg := s.defaults
	applyOverrides(&cfg, req.Config)

	start := time.Now()
	clip, err := s.engine.Generate(basePose, motion.MotionType(req.Motion), cfg)
	if err != nil {
		log.Warn().Err(err).Str("motion", req.Motion).Msg("generation failed")
		return GenerateResponse{ID: id, Error: err.Error()}
	}

	log.Info().
		Str("motion", req.Motion).
		Int("tracks", len(clip.Tracks)).
		Dur("elapsed", time.Since(start)).
		Msg("clip generated")
	return GenerateResponse{ID: id, Clip: clip}
}

func (s *Server) resolvePose(req *GenerateRequest) (motion.Pose, error) {
	if req.Pose != nil {
		return req.Pose.ToPose()
	}
	if req.PoseName != "" {
		if s.library != nil {
			if p, ok := s.library.Get(req.PoseName); ok {
				return p, nil
			}
		}
		return motion.Pose{}, &unknownPoseError{name: req.PoseName}
	}
	return motion.Pose{}, nil
}

type unknownPoseError struct{ name string }

func (e *unknownPoseError) Error() string { return "unknown pose " + e.name }

func applyOverrides(cfg *motion.Config, rc *requestConfig) {
	if rc == nil {
		return
	}
	if rc.Duration != nil {
		cfg.Duration = *rc.Duration
	}
	if rc.FPS != nil {
		cfg.FPS = *rc.FPS
	}
	if rc.Frequency != nil {
		cfg.Frequency = *rc.Frequency
	}
	if rc.Energy != nil {
		cfg.Energy = *rc.Energy
	}
	if rc.NoiseScale != nil {
		cfg.NoiseScale = *rc.NoiseScale
	}
	if rc.CoreCoupling != nil {
		cfg.CoreCoupling = *rc.CoreCoupling
	}
	if rc.Emotion != nil {
		cfg.Emotion = motion.Emotion(*rc.Emotion)
	}
	if rc.TableLimits != nil {
		cfg.UseTableLimits = *rc.TableLimits
	}
}
