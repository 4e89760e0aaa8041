package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/quordle/apps/go-solver/internal/board"
	"github.com/robalobadob/quordle/apps/go-solver/internal/config"
	"github.com/robalobadob/quordle/apps/go-solver/internal/delivery"
	"github.com/robalobadob/quordle/apps/go-solver/internal/httpserver"
	"github.com/robalobadob/quordle/apps/go-solver/internal/metrics"
	"github.com/robalobadob/quordle/apps/go-solver/internal/solver"
	"github.com/robalobadob/quordle/apps/go-solver/internal/store"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if p, _ := cmd.Flags().GetString("port"); p != "" {
				cfg.Port = p
			}
			return serve(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}

// buildServer wires the HTTP server from cfg. A vocabulary that fails to load
// is logged and leaves the server without an evaluator, so every board gets
// an empty suggestion set. The returned func releases external clients.
func buildServer(ctx context.Context, cfg config.Config) (*httpserver.Server, func()) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var ev *board.Evaluator
	vocab, err := loadVocabulary(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to load word list, serving without suggestions")
	} else {
		m.Vocabulary.Set(float64(vocab.Len()))
		opts := []board.Option{
			board.WithLimit(cfg.SuggestionLimit),
			board.WithFilterOptions(solver.Options{Grey: solver.ParseGreyMode(cfg.GreyMode)}),
			board.WithObserver(m),
		}
		if ws := openers(cfg); len(ws) > 0 {
			opts = append(opts, board.WithOpeners(ws))
		}
		ev = board.NewEvaluator(vocab, opts...)
	}

	cleanup := func() {}
	pubs := []board.Publisher{delivery.NewLogPublisher()}
	if cfg.RedisAddr != "" {
		rp := delivery.NewRedisPublisher(cfg.RedisAddr, cfg.RedisPassword, 0,
			delivery.WithChannel(cfg.RedisChannel),
			delivery.WithTTL(cfg.RedisTTL),
		)
		cleanup = func() { _ = rp.Close() }
		pubs = append(pubs, rp)
		log.Info().Str("addr", cfg.RedisAddr).Str("channel", rp.Channel()).Msg("publishing suggestions to redis")
	}

	s := httpserver.New(httpserver.Deps{
		Evaluator: ev,
		Store:     store.NewMemoryStore(),
		Publisher: delivery.Fanout(pubs...),
		Observer:  m,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Auth: httpserver.AuthConfig{
			Secret:     cfg.JWTSecret,
			TTL:        cfg.TokenTTL,
			APIKeyHash: cfg.APIKeyHash,
		},
		ClientOrigin: cfg.ClientOrigin,
	})
	return s, cleanup
}

func serve(ctx context.Context, cfg config.Config) error {
	s, cleanup := buildServer(ctx, cfg)
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("grey", cfg.GreyMode).Msg("starting quordle solver")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown did not complete")
			return srv.Close()
		}
	}
	return nil
}
