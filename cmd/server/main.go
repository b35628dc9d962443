package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/party-lottery/internal/config"
	"github.com/xtding233/party-lottery/internal/httpapi"
	"github.com/xtding233/party-lottery/internal/party"
	"github.com/xtding233/party-lottery/internal/rpc"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	env, err := config.LoadEnv(".env")
	if err != nil {
		return err
	}
	loader := config.NewLoaderFor(env)
	cfg, err := config.LoadWith(loader, env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := new(slog.LevelVar)
	level.Set(cfg.LogLevel)
	log := newLogger(cfg.LogFormat, level)
	slog.SetDefault(log)

	src, err := loadSeed(cfg)
	if err != nil {
		return err
	}
	switch {
	case src.Fallback:
		log.Warn("no usable seed, using default", "path", src.Path, "seed", src.Seed)
	case src.Skipped > 0:
		log.Warn("skipped malformed seed lines", "path", src.Path, "skipped", src.Skipped)
	}

	hall, err := party.New(party.Options{
		Algorithm:  cfg.Algorithm,
		Seed:       src.Seed,
		BingoSize:  cfg.BingoSize,
		AmidaSlots: cfg.AmidaSlots,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	if cfg.ParticipantsFile != "" {
		applyParticipants(log, hall, cfg.ParticipantsFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(hall, log, cfg.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}
	grpcSrv := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(log)))
	rpc.Register(grpcSrv, rpc.NewService(hall))
	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen grpc %s: %w", cfg.GRPCAddr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http listening", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		log.Info("grpc listening", "addr", grpcLis.Addr().String())
		if err := grpcSrv.Serve(grpcLis); err != nil {
			return fmt.Errorf("grpc: %w", err)
		}
		return nil
	})
	rl := newReloader(loader, env, cfg, hall, log, level)
	g.Go(func() error { return rl.watcher.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpSrv.Shutdown(sctx)
		grpcSrv.GracefulStop()
		return err
	})

	return g.Wait()
}

func newLogger(format string, level slog.Leveler) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
