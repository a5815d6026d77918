package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/creature"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/encounter"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/config"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/otel"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/random"
	"github.com/KirkDiggler/rpg-encounters/internal/redis"
	creaturerepo "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

const shutdownTimeout = 30 * time.Second

// bestiaryServices report NOT_SERVING until the first snapshot is live
var bestiaryServices = []string{
	v1alpha1.EncounterServiceName,
	v1alpha1.BestiaryServiceName,
}

var serverFlags struct {
	port      int
	redis     []string
	logLevel  string
	logFormat string
	seed      uint64
}

var serverCmd = &cobra.Command{
	Use:     "server",
	Aliases: []string{"serve"},
	Short:   "Start the gRPC server",
	Long: `Start the encounter gRPC server. Settings are read from RPG_ENCOUNTERS_*
environment variables; flags override them.`,
	RunE: runServer,
}

func init() {
	serverCmd.Flags().IntVar(&serverFlags.port, "port", 50051, "gRPC server port")
	serverCmd.Flags().StringSliceVar(&serverFlags.redis, "redis", nil, "Redis endpoints")
	serverCmd.Flags().StringVar(&serverFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	serverCmd.Flags().StringVar(&serverFlags.logFormat, "log-format", config.LogFormatText, "Log format (text, json)")
	serverCmd.Flags().Uint64Var(&serverFlags.seed, "seed", 0, "Fixed random seed for encounter generation")
}

// applyServerFlags copies explicitly set flags over the env config
func applyServerFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.GRPCPort = serverFlags.port
	}
	if flags.Changed("redis") {
		cfg.RedisEndpoints = serverFlags.redis
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = serverFlags.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = serverFlags.logFormat
	}
	if flags.Changed("seed") {
		cfg.RandomSeed = serverFlags.seed
	}
	return cfg.Validate()
}

// applicationConfig holds what the server needs beyond the config file
type applicationConfig struct {
	Repository   creaturerepo.Repository
	Seed         uint64
	TickInterval time.Duration
	Expiration   time.Duration
	Logger       *slog.Logger
}

// application is the wired gRPC server and the refresher feeding it
type application struct {
	server    *grpc.Server
	health    *health.Server
	refresher *creaturecache.Refresher
}

func newApplication(cfg *applicationConfig) (*application, error) {
	holder := creaturecache.NewHolder()
	bus := events.NewBus()
	clk := clock.New()

	refresher, err := creaturecache.NewRefresher(&creaturecache.RefresherConfig{
		Repository:   cfg.Repository,
		Holder:       holder,
		EventBus:     bus,
		Clock:        clk,
		IDGenerator:  idgen.NewTimestamped("snap", clk),
		TickInterval: cfg.TickInterval,
		Expiration:   cfg.Expiration,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresher")
	}

	encounterService, err := encounter.NewOrchestrator(&encounter.Config{
		Snapshots:   holder,
		Roller:      random.NewRoller(cfg.Seed),
		IDGenerator: idgen.NewUUID("enc"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create encounter orchestrator")
	}

	creatureService, err := creature.NewOrchestrator(&creature.Config{
		Snapshots:  holder,
		Repository: cfg.Repository,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create creature orchestrator")
	}

	encounterHandler, err := v1alpha1.NewEncounterHandler(&v1alpha1.EncounterHandlerConfig{
		EncounterService: encounterService,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create encounter handler")
	}

	bestiaryHandler, err := v1alpha1.NewBestiaryHandler(&v1alpha1.BestiaryHandlerConfig{
		CreatureService: creatureService,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create bestiary handler")
	}

	logger := interceptorLogger(cfg.Logger)
	recoveryOpt := grpc_recovery.WithRecoveryHandlerContext(recoverPanic)

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	v1alpha1.RegisterEncounterServiceServer(srv, encounterHandler)
	v1alpha1.RegisterBestiaryServiceServer(srv, bestiaryHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, name := range bestiaryServices {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	}

	bus.SubscribeFunc(creaturecache.RefreshedEventType, 0, func(ctx context.Context, _ events.Event) error {
		for _, name := range bestiaryServices {
			healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
		}
		slog.DebugContext(ctx, "Bestiary services serving")
		return nil
	})

	return &application{
		server:    srv,
		health:    healthServer,
		refresher: refresher,
	}, nil
}

// recoverPanic turns invariant violations back into their coded error and
// anything else into codes.Internal
func recoverPanic(ctx context.Context, p any) error {
	slog.ErrorContext(ctx, "Recovered from panic in handler", "panic", p)

	if err, ok := p.(error); ok {
		var coded *errors.Error
		if errors.As(err, &coded) {
			return errors.ToGRPCError(coded)
		}
	}
	return status.Errorf(codes.Internal, "internal error: %v", p)
}

// run serves on lis and refreshes the cache until ctx is cancelled, then
// stops the server gracefully
func (a *application) run(ctx context.Context, lis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.InfoContext(gctx, "gRPC server starting", "addr", lis.Addr().String())
		if err := a.server.Serve(lis); err != nil {
			return errors.Wrap(err, "failed to serve")
		}
		return nil
	})

	g.Go(func() error {
		return a.refresher.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.InfoContext(ctx, "Shutting down gRPC server")
		a.health.Shutdown()

		stopped := make(chan struct{})
		go func() {
			a.server.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(shutdownTimeout):
			slog.WarnContext(ctx, "Graceful shutdown timeout exceeded, forcing stop")
			a.server.Stop()
		case <-stopped:
			slog.InfoContext(ctx, "Server stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyServerFlags(cmd, cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	shutdownTracing, err := otel.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			slog.Warn("Failed to flush traces", "error", err)
		}
	}()

	client, err := redis.Connect(cfg.RedisEndpoints, cfg.RedisMasterName, cfg.RedisOptions())
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close() // nolint:errcheck // safe to ignore on shutdown
	}()

	repo, err := creaturerepo.NewRedis(&creaturerepo.RedisConfig{Client: client})
	if err != nil {
		return err
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}

	app, err := newApplication(&applicationConfig{
		Repository:   repo,
		Seed:         seed,
		TickInterval: cfg.CacheTickInterval,
		Expiration:   cfg.CacheExpiration,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	slog.InfoContext(ctx, "Server configured",
		"port", cfg.GRPCPort,
		"redis_endpoints", cfg.RedisEndpoints,
		"cache_tick", cfg.CacheTickInterval.String(),
		"cache_expiration", cfg.CacheExpiration.String(),
		"tracing", cfg.OTelEndpoint != "",
	)

	return app.run(ctx, lis)
}
