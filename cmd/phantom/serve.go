package phantom

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/phantomsec/phantom/internal/breach"
	"github.com/phantomsec/phantom/internal/config"
	"github.com/phantomsec/phantom/internal/logging"
	"github.com/phantomsec/phantom/internal/metrics"
	"github.com/phantomsec/phantom/internal/server"
	"github.com/phantomsec/phantom/internal/trace"
)

const defaultAddr = ":5000"

var (
	flagAddr        string
	flagLogLevel    string
	flagHIBPBaseURL string
	flagHIBPTimeout time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the interception API server",
		RunE:  runServe,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (default :5000)")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	cmd.Flags().StringVar(&flagHIBPBaseURL, "hibp-url", "", "override the Have I Been Pwned range API base URL")
	cmd.Flags().DurationVar(&flagHIBPTimeout, "hibp-timeout", 0, "breach lookup timeout (e.g. 5s)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	// Resolve settings: CLI > env > local config > global config.
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if wd, err := os.Getwd(); err == nil {
		if c, err := config.LoadLocal(wd); err == nil {
			lcfg = c
		}
	}

	addr := pickString(envOr(flagAddr, "PHANTOM_ADDR"), lcfg.ListenAddr, gcfg.ListenAddr)
	if addr == "" {
		addr = defaultAddr
	}
	level := pickString(envOr(flagLogLevel, "PHANTOM_LOG_LEVEL"), lcfg.LogLevel, gcfg.LogLevel)
	if level == "" {
		level = "info"
	}
	hibpURL := pickString(envOr(flagHIBPBaseURL, "PHANTOM_HIBP_URL"), lcfg.HIBPBaseURL, gcfg.HIBPBaseURL)
	timeout := flagHIBPTimeout
	if timeout == 0 {
		if raw := pickString(os.Getenv("PHANTOM_HIBP_TIMEOUT"), lcfg.HIBPTimeout, gcfg.HIBPTimeout); raw != "" {
			if d, err := time.ParseDuration(raw); err == nil {
				timeout = d
			}
		}
	}

	logger := logging.New(level)
	m := metrics.New(prometheus.DefaultRegisterer)
	interceptor := trace.NewInterceptor(trace.NewStore(), logger, m)
	checker := breach.NewClient(breach.WithBaseURL(hibpURL), breach.WithTimeout(timeout))

	srv := &http.Server{
		Addr: addr,
		Handler: server.New(server.Config{
			Interceptor:  interceptor,
			Breach:       checker,
			Logger:       logger,
			HistoryLimit: pickInt(0, lcfg.HistoryLimit, gcfg.HistoryLimit),
		}).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "version", version)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func envOr(cli, key string) string {
	if cli != "" {
		return cli
	}
	return os.Getenv(key)
}
