package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	fiberzerolog "github.com/gofiber/contrib/v3/zerolog"
	"github.com/gofiber/fiber/v3"
	fiberadaptor "github.com/gofiber/fiber/v3/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v3/middleware/recover"
	fiberrequestid "github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vitalvas/apidoc/internal/config"
	"github.com/vitalvas/apidoc/internal/petstore"
	"github.com/vitalvas/apidoc/muxhandlers"
	"github.com/vitalvas/apidoc/openapi"
	"github.com/vitalvas/apidoc/openapifiber"
)

const (
	metricsPath       = "/metrics"
	maxBodyBytes      = 4 * 1024 * 1024
	readHeaderTimeout = 10 * time.Second
)

var (
	serveAddr   string
	serveEngine string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server with its documentation endpoints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		if serveEngine != "" {
			cfg.Server.Engine = serveEngine
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		logger := newLogger(cfg.Log, os.Stdout)
		reg := newRegistry()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		switch cfg.Server.Engine {
		case config.EngineFiber:
			app, err := newFiberApp(cfg, logger, reg)
			if err != nil {
				return err
			}
			return runFiber(ctx, cfg, logger, app)

		default:
			handler, err := newChiRouter(cfg, logger, reg)
			if err != nil {
				return err
			}
			return runHTTP(ctx, cfg, logger, handler)
		}
	},
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// docsHandleConfig completes the serving options with the pieces that do
// not come from the config file.
func docsHandleConfig(cfg *config.Config, logger zerolog.Logger, reg prometheus.Registerer) (*openapi.HandleConfig, error) {
	metrics, err := openapi.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register docs metrics: %w", err)
	}

	hc := cfg.Docs.HandleConfig()
	hc.Schemas = petstore.Schemas()
	hc.Metrics = metrics
	hc.Logger = &logger

	return hc, nil
}

// docsAuth returns nil when no credentials are configured.
func docsAuth(cfg config.AuthConfig) (func(http.Handler) http.Handler, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return muxhandlers.BasicAuth(muxhandlers.BasicAuthConfig{
		Realm:       "API documentation",
		Credentials: map[string]string{cfg.Username: cfg.Password},
	})
}

func newChiRouter(cfg *config.Config, logger zerolog.Logger, reg *prometheus.Registry) (http.Handler, error) {
	hc, err := docsHandleConfig(cfg, logger, reg)
	if err != nil {
		return nil, err
	}
	auth, err := docsAuth(cfg.Docs.Auth)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(muxhandlers.RequestID(muxhandlers.RequestIDConfig{}))
	r.Use(muxhandlers.Recovery(logger))
	r.Use(muxhandlers.AccessLog(muxhandlers.AccessLogConfig{
		Logger: logger,
		Skip: func(r *http.Request) bool {
			return r.URL.Path == metricsPath
		},
	}))

	r.Method(http.MethodGet, metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	store := openapi.NewStore(openapi.WithLogger(logger))
	if err := petstore.New(petstore.NewRepository()).MountChi(r, store); err != nil {
		return nil, fmt.Errorf("failed to document routes: %w", err)
	}

	r.Group(func(r chi.Router) {
		if auth != nil {
			r.Use(auth)
		}
		store.Handle(r, cfg.Docs.URL, petstore.Shell(cfg.Docs.Title), hc)
	})

	return r, nil
}

func newFiberApp(cfg *config.Config, logger zerolog.Logger, reg *prometheus.Registry) (*fiber.App, error) {
	hc, err := docsHandleConfig(cfg, logger, reg)
	if err != nil {
		return nil, err
	}
	auth, err := docsAuth(cfg.Docs.Auth)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
		BodyLimit:   maxBodyBytes,
	})

	app.Use(fiberrecover.New())

	// Registered before the logger so scrapes stay out of the access log.
	app.Get(metricsPath, fiberadaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	app.Use(fiberrequestid.New(fiberrequestid.Config{
		Header: muxhandlers.DefaultRequestIDHeader,
	}))
	app.Use(fiberzerolog.New(fiberzerolog.Config{
		Logger: &logger,
		Fields: []string{
			fiberzerolog.FieldLatency,
			fiberzerolog.FieldStatus,
			fiberzerolog.FieldMethod,
			fiberzerolog.FieldURL,
			fiberzerolog.FieldRequestID,
			fiberzerolog.FieldError,
		},
	}))

	store := openapi.NewStore(openapi.WithLogger(logger))
	if err := petstore.New(petstore.NewRepository()).MountFiber(app, store); err != nil {
		return nil, fmt.Errorf("failed to document routes: %w", err)
	}

	if auth != nil {
		app.Use(cfg.Docs.URL, fiberadaptor.HTTPMiddleware(auth))
	}
	openapifiber.Handle(app, store, cfg.Docs.URL, petstore.Shell(cfg.Docs.Title), hc)

	return app, nil
}

func runHTTP(ctx context.Context, cfg *config.Config, logger zerolog.Logger, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("engine", config.EngineChi).Str("docs", cfg.Docs.URL).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func runFiber(ctx context.Context, cfg *config.Config, logger zerolog.Logger, app *fiber.App) error {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("engine", config.EngineFiber).Str("docs", cfg.Docs.URL).Msg("starting server")
		serverErr <- app.Listen(cfg.Server.Addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().StringVar(&serveEngine, "engine", "", "Routing engine: chi or fiber (overrides server.engine)")

	rootCmd.AddCommand(serveCmd)
}
