// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/paper-digest/internal/metrics"
	"github.com/pdiddy/paper-digest/internal/schedule"
	"github.com/pdiddy/paper-digest/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run digests on a cron schedule and serve metrics",
	Long: `Serve runs one digest at every activation of schedule.cron (default weekdays
at 09:00 local time) until interrupted. When schedule.metrics_addr is set it
also serves Prometheus metrics on /metrics and the last run on /healthz.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("now", false, "run one digest immediately before waiting for the schedule")

	rootCmd.AddCommand(serveCmd)
}

// runState remembers the outcome of the most recent run for /healthz.
type runState struct {
	mu   sync.Mutex
	last *types.RunRecord
	err  string
}

func (s *runState) set(rec *types.RunRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = rec
	s.err = ""
	if err != nil {
		s.err = err.Error()
	}
}

type healthResponse struct {
	Status  string           `json:"status"`
	Version string           `json:"version"`
	Next    time.Time        `json:"next_run"`
	LastRun *types.RunRecord `json:"last_run,omitempty"`
	Error   string           `json:"last_error,omitempty"`
}

// newRouter serves /metrics from m and /healthz from state.
func newRouter(m *metrics.Metrics, state *runState, sched *schedule.Schedule) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		state.mu.Lock()
		status := "ok"
		if state.err != "" {
			status = "degraded"
		}
		resp := healthResponse{
			Status:  status,
			Version: version,
			Next:    sched.Next(time.Now()),
			LastRun: state.last,
			Error:   state.err,
		}
		state.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	return r
}

func runServe(cmd *cobra.Command, args []string) error {
	runNow, _ := cmd.Flags().GetBool("now")

	if err := requireCredentials(cfg); err != nil {
		return err
	}
	sched, err := schedule.Parse(cfg.Schedule.Cron)
	if err != nil {
		return err
	}

	m := metrics.New()
	p, closeFn, err := newPipeline(cfg, m)
	if err != nil {
		return err
	}
	defer closeFn()

	state := &runState{}
	job := func(ctx context.Context) error {
		res, err := p.Run(ctx)
		if res != nil {
			state.set(&res.Record, nil)
		} else {
			state.set(nil, err)
		}
		return err
	}

	g, ctx := errgroup.WithContext(cmd.Context())

	if addr := cfg.Schedule.MetricsAddr; addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           newRouter(m, state, sched),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			zap.L().Info("serve: metrics listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		if runNow {
			if err := job(ctx); err != nil {
				zap.L().Warn("serve: initial run failed", zap.Error(err))
			}
		}
		zap.L().Info("serve: schedule started", zap.String("cron", sched.String()))
		return (&schedule.Runner{Schedule: sched, Job: job}).Run(ctx)
	})

	return g.Wait()
}
