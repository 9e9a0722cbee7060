package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	biome "github.com/anatolykoptev/go-biome"
	"github.com/anatolykoptev/go-biome/metrics"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

type options struct {
	token     string
	baseURL   string
	proxy     string
	logLevel  string
	logFormat string
	metrics   bool

	registry *prometheus.Registry
	recorder *metrics.Recorder
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "biome",
		Short:         "Inspect feeds and reply threads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initLogger(opts.logLevel, opts.logFormat)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return opts.reportMetrics()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.token, "token", os.Getenv("BIOME_TOKEN"), "API bearer token (env BIOME_TOKEN)")
	flags.StringVar(&opts.baseURL, "base-url", os.Getenv("BIOME_BASE_URL"), "API base URL (env BIOME_BASE_URL)")
	flags.StringVar(&opts.proxy, "proxy", os.Getenv("BIOME_PROXY"), "proxy URL (env BIOME_PROXY)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flags.BoolVar(&opts.metrics, "metrics", false, "log API call counters on exit")

	root.AddCommand(newFeedCmd(opts), newThreadCmd(opts))
	return root
}

func (o *options) client() (*biome.Client, error) {
	cfg := biome.ClientConfig{
		BaseURL: o.baseURL,
		Token:   o.token,
		Proxy:   o.proxy,
	}
	if o.metrics {
		o.registry = prometheus.NewRegistry()
		o.recorder = metrics.NewRecorder(o.registry)
		cfg.MetricsHook = o.recorder.Hook()
	}
	return biome.NewClient(cfg)
}

// reportMetrics logs every non-zero API call counter.
func (o *options) reportMetrics() error {
	if o.registry == nil {
		return nil
	}
	families, err := o.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			attrs := []any{slog.Float64("count", m.GetCounter().GetValue())}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}
			slog.Info(mf.GetName(), attrs...)
		}
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidLogLevel, level)
	}
}

func initLogger(level, format string) error {
	parsedLevel, err := parseLevel(level)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: parsedLevel}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}
