// Package cli holds the process plumbing shared by the analyzer commands:
// ambient configuration, the optional metrics server and output files.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	httpadapter "github.com/couchcryptid/kismet-analyzer/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/kismet-analyzer/internal/adapter/kafka"
	"github.com/couchcryptid/kismet-analyzer/internal/adapter/kismetdb"
	"github.com/couchcryptid/kismet-analyzer/internal/config"
	"github.com/couchcryptid/kismet-analyzer/internal/domain"
	"github.com/couchcryptid/kismet-analyzer/internal/observability"
)

// ErrUsage marks errors caused by invalid command-line input.
var ErrUsage = errors.New("usage")

// Usagef returns an error wrapping ErrUsage.
func Usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}

// UsageError marks err as caused by invalid command-line input.
func UsageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// Runtime bundles the ambient services a command runs with.
type Runtime struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Stdout  io.Writer
}

// Command is the body of an analyzer binary.
type Command func(ctx context.Context, rt *Runtime, args []string) error

// Main loads configuration, runs cmd with the process arguments and exits
// with 0 on success, 2 on usage errors and 1 on any other failure.
func Main(name string, cmd Command) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rt := &Runtime{
		Config:  cfg,
		Logger:  observability.NewLogger(cfg).With("cmd", name),
		Metrics: observability.NewMetrics(),
		Stdout:  os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = cmd(ctx, rt, os.Args[1:])
	stop()
	os.Exit(ExitCode(rt.Logger, err))
}

// ExitCode maps a command error to a process exit status, logging failures.
func ExitCode(logger *slog.Logger, err error) int {
	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, ErrUsage):
		logger.Error("invalid arguments", "error", err)
		return 2
	default:
		logger.Error("run failed", "error", err)
		return 1
	}
}

// OutputPrefix returns out when set. Otherwise it derives the prefix from the
// input path by removing a trailing ".kismet"; Postgres inputs use "kismet".
func OutputPrefix(in, out string) string {
	if out != "" {
		return out
	}
	if kismetdb.IsPostgresDSN(in) {
		return "kismet"
	}
	return strings.TrimSuffix(in, ".kismet")
}

// Serve starts the status server when METRICS_ADDR is configured and returns
// a func that shuts it down within the configured timeout.
func (rt *Runtime) Serve(run httpadapter.RunStatus) (shutdown func()) {
	if rt.Config.MetricsAddr == "" {
		return func() {}
	}

	srv := httpadapter.NewServer(rt.Config.MetricsAddr, run, rt.Logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.Logger.Error("http server error", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), rt.Config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			rt.Logger.Error("http server shutdown error", "error", err)
		}
	}
}

// ExportFile creates path, hands it to write and records how many entities
// were exported. An existing file is truncated.
func (rt *Runtime) ExportFile(path, exporter string, write func(io.Writer) (int, error)) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s output: %w", exporter, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	n, err := write(f)
	if err != nil {
		return fmt.Errorf("export %s: %w", exporter, err)
	}
	rt.exported(exporter, n, "path", path)
	return nil
}

// Publish sends entities to the configured Kafka topic.
func (rt *Runtime) Publish(ctx context.Context, entities []domain.Entity) error {
	w := kafkaadapter.NewWriter(rt.Config, rt.Logger)
	defer func() {
		if err := w.Close(); err != nil {
			rt.Logger.Error("kafka writer close error", "error", err)
		}
	}()

	n, err := w.Publish(ctx, entities)
	if err != nil {
		return err
	}
	rt.exported("kafka", n, "topic", rt.Config.KafkaTopic)
	return nil
}

func (rt *Runtime) exported(exporter string, n int, attrs ...any) {
	rt.Metrics.EntitiesExported.WithLabelValues(exporter).Add(float64(n))
	rt.Logger.Info("exported entities", append([]any{"exporter", exporter, "count", n}, attrs...)...)
}

// Parse parses args into fs, classifying malformed input as a usage error.
func Parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return UsageError(err)
	}
	return nil
}
