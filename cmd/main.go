package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/wes-io-live/idgen/internal/config"
	"github.com/weiawesome/wes-io-live/idgen/internal/generator"
	idgrpc "github.com/weiawesome/wes-io-live/idgen/internal/grpc"
	"github.com/weiawesome/wes-io-live/idgen/internal/handler"
	"github.com/weiawesome/wes-io-live/idgen/internal/inspector"
	"github.com/weiawesome/wes-io-live/idgen/internal/service"
	pkglog "github.com/weiawesome/wes-io-live/idgen/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "idgen",
	})
	logger := pkglog.L()

	logger.Info().Msg("starting idgen")

	// Resolve the node identity, honouring a configured UUID v1 node id
	host, err := generator.NewHostIdentity(generator.SystemRandom)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to derive host identity")
	}
	if node, ok, _ := cfg.UUID.Node(); ok {
		host = host.WithNodeID(node)
		logger.Info().Str("node_id", cfg.UUID.NodeID).Msg("uuid v1 node id overridden")
	}

	engine, err := generator.New(
		generator.WithNode(host),
		generator.WithLogger(logger.With().Str("component", "generator").Logger()),
		generator.WithNanoIDDefaults(cfg.NanoID.Size, cfg.NanoID.Alphabet),
		generator.WithCUID2Length(cfg.CUID2.Length),
		generator.WithSnowflake(cfg.Snowflake.MachineID, cfg.Snowflake.Epoch),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create generation engine")
	}
	logger.Info().
		Int64("machine_id", cfg.Snowflake.MachineID).
		Int64("epoch", cfg.Snowflake.Epoch).
		Int("nanoid_size", cfg.NanoID.Size).
		Int("cuid2_length", cfg.CUID2.Length).
		Msg("generation engine initialized")

	insp := inspector.New(
		inspector.WithPlausibleRange(
			time.Date(cfg.Inspector.MinYear, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(cfg.Inspector.MaxYear, time.January, 1, 0, 0, 0, 0, time.UTC),
		),
		inspector.WithSnowflakeEpoch(cfg.Snowflake.Epoch),
	)

	idService := service.NewIDService(engine, insp, cfg.Batch.MaxCount)

	// Start gRPC server
	grpcAddr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	grpcServer, err := idgrpc.StartGRPCServer(grpcAddr, idService, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start grpc server")
	}

	// Setup HTTP server
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(handler.NewHandler(idService), logger)
	httpAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: httpAddr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", httpAddr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info().Msg("shutting down idgen")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("HTTP server forced to shutdown")
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server error")
	}
	logger.Info().Msg("idgen stopped")
}
