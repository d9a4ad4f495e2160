package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/stringnet/sim"
	"github.com/katalvlaran/stringnet/store/checkpoint"
	"github.com/katalvlaran/stringnet/store/sqlite"
	"github.com/katalvlaran/stringnet/update"
)

// runEnv holds the stores and metrics shared by the runs of one command.
type runEnv struct {
	results     *sqlite.Store
	checkpoints *checkpoint.Store
	metrics     *update.Metrics
	server      *http.Server
	logger      *slog.Logger
}

// openEnv opens whatever the configuration asks for. Callers must close the
// returned env, also on error.
func (c *cli) openEnv(ctx context.Context) (*runEnv, error) {
	e := &runEnv{logger: c.logger}
	var err error
	if c.cfg.ResultsDB != "" {
		if e.results, err = sqlite.Open(ctx, c.cfg.ResultsDB); err != nil {
			return e, err
		}
	}
	if c.cfg.CheckpointDir != "" {
		cfg := checkpoint.DefaultConfig(c.cfg.CheckpointDir)
		cfg.Logger = c.logger.With(slog.String("component", "badger"))
		if e.checkpoints, err = checkpoint.Open(cfg); err != nil {
			return e, err
		}
	}
	if c.cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		e.metrics = update.NewMetrics(reg)
		if err := e.serveMetrics(c.cfg.MetricsAddr, reg); err != nil {
			return e, err
		}
	}

	return e, nil
}

func (e *runEnv) serveMetrics(addr string, reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	e.server = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	e.logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))
	go func() {
		if err := e.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics server", slog.Any("error", err))
		}
	}()

	return nil
}

// options turns the env into sim options.
func (e *runEnv) options(keep int) []sim.Option {
	opts := []sim.Option{sim.WithLogger(e.logger)}
	if e.results != nil {
		opts = append(opts, sim.WithResults(e.results))
	}
	if e.checkpoints != nil {
		opts = append(opts, sim.WithCheckpoints(e.checkpoints, keep))
	}
	if e.metrics != nil {
		opts = append(opts, sim.WithMetrics(e.metrics))
	}

	return opts
}

func (e *runEnv) close() error {
	var errs []error
	if e.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, e.server.Shutdown(ctx))
	}
	errs = append(errs, e.checkpoints.Close(), e.results.Close())

	return errors.Join(errs...)
}
