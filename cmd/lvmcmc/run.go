// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvmcmc/internal/config"
	"github.com/katalvlaran/lvmcmc/mcmc"
	"github.com/katalvlaran/lvmcmc/metrics"
	"github.com/katalvlaran/lvmcmc/numeric"
	"github.com/katalvlaran/lvmcmc/param"
)

type runFlags struct {
	configPath  string
	steps       int
	seed        uint64
	logLevel    string
	metricsAddr string
	level       float64
	sigma       float64
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sampler described by a YAML configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("steps") {
				cfg.Sampler.Steps = f.steps
			}
			if cmd.Flags().Changed("seed") {
				cfg.Sampler.Seed = f.seed
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = f.logLevel
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Addr = f.metricsAddr
			}
			if err = cfg.Validate(); err != nil {
				return err
			}
			if cmd.Flags().Changed("sigma") {
				if !(f.sigma > 0) || math.IsInf(f.sigma, 1) {
					return fmt.Errorf("--sigma must be finite and positive, got %g", f.sigma)
				}
				f.level = numeric.Normal1SidedCDF(f.sigma)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runSampler(ctx, cmd, cfg, f.level)
		},
	}
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "path to the YAML run configuration")
	cmd.Flags().IntVar(&f.steps, "steps", 0, "override sampler.steps")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "override sampler.seed")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on host:port")
	cmd.Flags().Float64Var(&f.level, "interval", 0.68, "probability mass of the reported credible interval")
	cmd.Flags().Float64Var(&f.sigma, "sigma", 0, "report intervals of ±sigma standard deviations, overriding --interval")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runSampler(ctx context.Context, cmd *cobra.Command, cfg config.RunConfig, level float64) error {
	logger, sync, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer sync()

	var obs mcmc.Observer = mcmc.NopObserver{}
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		mo, err := metrics.New(reg)
		if err != nil {
			return err
		}
		obs = mo
		shutdown := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer shutdown()
	}

	list, err := cfg.BuildList(param.WithLogger(logger.WithName("param")))
	if err != nil {
		return err
	}
	obj, err := cfg.BuildObjective()
	if err != nil {
		return err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	opts = append(opts, mcmc.WithLogger(logger.WithName("mcmc")), mcmc.WithObserver(obs))

	m, err := mcmc.NewMetropolisHastings(list, obj, opts...)
	if err != nil {
		return err
	}
	start := time.Now()
	runErr := m.Run(ctx, cfg.Sampler.Steps)
	m.Stop()
	logger.Info("sampling finished", "elapsed", time.Since(start).String(), "run", m.RunID().String())
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if m.PhysicalChain() == nil {
		return runErr
	}

	return report(cmd.OutOrStdout(), m, list, cfg.Sampler.BurnIn, cfg.Sampler.Thin, level)
}

// serveMetrics exposes reg on addr until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger logr.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error(err, "metrics server stopped")
		}
	}()
	logger.Info("serving metrics", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
