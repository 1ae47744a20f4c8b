// @title         feedbackd API
// @version       0.1.0
// @description   Classifies free-text feedback and stores it with its sentiment and summary

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedbackd/internal/adapters/inference"
	"feedbackd/internal/modkit/httpkit"
	"feedbackd/internal/modkit/repokit"
	"feedbackd/internal/platform/config"
	"feedbackd/internal/platform/logger"
	"feedbackd/internal/platform/metrics"
	phttp "feedbackd/internal/platform/net/http"
	"feedbackd/internal/platform/store"
	"feedbackd/internal/services/api"
	feedbackrepo "feedbackd/internal/services/api/feedback/repo"
)

func main() {
	// .env first so every config view below sees it
	loaded, dotErr := config.LoadDotenv(dotenvPaths()...)

	opts := logger.FromEnv()
	opts.Component = "api"
	logger.Init(opts)
	l := logger.Get()
	if dotErr != nil {
		l.Fatal().Err(dotErr).Msg("dotenv")
	}
	if len(loaded) > 0 {
		l.Debug().Strs("files", loaded).Msg("dotenv loaded")
	}

	if err := run(); err != nil {
		l.Fatal().Err(err).Msg("feedbackd stopped")
	}
	l.Info().Msg("bye")
}

// dotenvPaths honours CONFIG_DOTENV, defaulting to ./.env
func dotenvPaths() []string {
	if p := os.Getenv("CONFIG_DOTENV"); p != "" {
		return []string{p}
	}
	return nil
}

func run() error {
	l := logger.Get()
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "feedbackd"), store.WithLogger(*l))
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	if root.Prefix("STORE_").MayBool("BOOTSTRAP", true) {
		if err := bootstrap(ctx, st, root); err != nil {
			return err
		}
	}

	engine, err := inference.New(ctx, inference.ConfigFromEnv(root))
	if err != nil {
		return err
	}
	l.Info().Str("provider", engine.Provider()).Str("model", engine.Model()).Msg("inference ready")

	m := metrics.New()

	// CORE_API_PORT, CORE_API_SHUTDOWN_GRACE and the CORE_API_*_TIMEOUT keys
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:  root,
		Store:   st,
		Logger:  *l,
		Metrics: m,
		Engine:  engine,
		Stack: httpkit.StackOptions{
			Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
			SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 5*time.Second),
			CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
	})

	return srv.Run(ctx)
}

// bootstrap creates the Feedback table and the optional analytics table
func bootstrap(ctx context.Context, st *store.Store, root config.Conf) error {
	r, err := feedbackrepo.Dialects().Bind(st.Driver, st.SQL)
	if err != nil {
		return err
	}
	if err := r.Bootstrap(ctx); err != nil {
		return err
	}
	return feedbackrepo.NewEvents(st.CH, feedbackrepo.EventsTable(root)).Bootstrap(ctx)
}
