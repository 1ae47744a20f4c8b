package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"feedbackd/internal/platform/config"
	"feedbackd/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Server owns the root chi mux and the listener it is served on
type Server struct {
	mux   *chi.Mux
	srv   *http.Server
	grace time.Duration

	mu      sync.Mutex
	bound   string
	started chan struct{}
}

// NewServer reads PORT, SHUTDOWN_GRACE and the http.Server timeouts from cfg (e.g. CORE_API_)
func NewServer(cfg config.Conf) *Server {
	mux := chi.NewRouter()
	return &Server{
		mux:   mux,
		grace: cfg.MayDuration("SHUTDOWN_GRACE", 15*time.Second),
		srv: &http.Server{
			Addr:              cfg.MayPort("PORT", ":4000"),
			Handler:           mux,
			ReadHeaderTimeout: cfg.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		started: make(chan struct{}),
	}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the bound address once Run is listening, the configured one before
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound != "" {
		return s.bound
	}
	return s.srv.Addr
}

// Started is closed once the listener is open
func (s *Server) Started() <-chan struct{} { return s.started }

// Run listens, serves until ctx ends and then drains in flight requests for up to the grace period
// a listen failure is returned before anything is served
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.bound = ln.Addr().String()
	s.mu.Unlock()
	close(s.started)

	log := logger.Named("http")
	log.Info().Str("addr", s.Addr()).Msg("http listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Dur("grace", s.grace).Msg("http shutting down")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.grace)
		defer cancel()
		return s.srv.Shutdown(sctx)
	})
	return g.Wait()
}
