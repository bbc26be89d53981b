package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/cosmo-api/internal/config"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/rest"
	"github.com/KirkDiggler/cosmo-api/internal/handlers/teams/v1alpha1"
	"github.com/KirkDiggler/cosmo-api/internal/orchestrators/team"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/idgen"
	"github.com/KirkDiggler/cosmo-api/internal/redis"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
)

const shutdownTimeout = 30 * time.Second

var (
	grpcPort int
	httpPort int
	envFile  string
	debug    bool
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Start the team service over gRPC and the JSON HTTP API. Settings come from the environment and an optional .env file.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "grpc-port", 50051, "gRPC server port, overrides GRPC_PORT")
	serverCmd.Flags().IntVar(&httpPort, "http-port", 8080, "HTTP server port, overrides HTTP_PORT")
	serverCmd.Flags().StringVar(&envFile, "env-file", "", "Env file to load before the environment")
	serverCmd.Flags().BoolVar(&debug, "debug", false, "Log at debug level")
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("grpc-port") {
		cfg.GRPCPort = grpcPort
	}
	if cmd.Flags().Changed("http-port") {
		cfg.HTTPPort = httpPort
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	return cfg, cfg.Validate()
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.New(cfg.RedisConfig())
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() {
		_ = redisClient.Close()
	}()

	rosterRepo, closeRoster, err := openRoster(ctx, cfg, redisClient, logger)
	if err != nil {
		return fmt.Errorf("failed to open roster: %w", err)
	}
	defer closeRoster()

	sharesRepo, err := shares.NewRedisRepository(&shares.Config{
		Client: redisClient,
		TTL:    cfg.ShareTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create shares repository: %w", err)
	}

	teamService, err := team.NewOrchestrator(&team.Config{
		SharesRepo:    sharesRepo,
		RosterRepo:    rosterRepo,
		CodeGenerator: idgen.NewShortCode(cfg.ShortCodeLength),
		CodeLength:    cfg.ShortCodeLength,
		MaxAttempts:   cfg.ShareMaxAttempts,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create team orchestrator: %w", err)
	}

	teamHandler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{TeamService: teamService})
	if err != nil {
		return fmt.Errorf("failed to create team handler: %w", err)
	}

	router, err := rest.NewRouter(&rest.Config{
		TeamService: teamService,
		Logger:      logger,
		Health: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	grpcLogger := interceptorLogger(logger)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLogger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLogger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)
	v1alpha1.RegisterTeamServiceServer(srv, teamHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("grpc server starting", zap.Int("port", cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			return fmt.Errorf("failed to serve grpc: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("http server starting", zap.Int("port", cfg.HTTPPort))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown incomplete", zap.Error(err))
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			logger.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			logger.Info("servers stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

// openRoster picks the configured roster source and puts the Redis cache in
// front of it. Without a source the roster is empty and inline links fall
// back to their embedded snapshots.
func openRoster(ctx context.Context, cfg *config.Config, client redis.Client, logger *zap.Logger) (roster.Repository, func(), error) {
	closer := func() {}

	var source roster.Repository
	switch {
	case cfg.RosterFile != "":
		repo, err := roster.NewFileRepository(cfg.RosterFile)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("roster loaded from file", zap.String("path", cfg.RosterFile))
		source = repo
	case cfg.RosterDB != "":
		repo, err := roster.OpenSQLite(ctx, &roster.SQLiteConfig{Path: cfg.RosterDB})
		if err != nil {
			return nil, nil, err
		}
		logger.Info("roster opened from sqlite", zap.String("path", cfg.RosterDB))
		source = repo
		closer = func() {
			if err := repo.Close(); err != nil {
				logger.Warn("closing roster db", zap.Error(err))
			}
		}
	default:
		logger.Warn("no roster configured, set ROSTER_FILE or ROSTER_DB")
		source = roster.NewInMemoryRepository(nil)
	}

	cached, err := roster.NewCachedRepository(&roster.CacheConfig{
		Next:   source,
		Client: client,
		TTL:    cfg.RosterCacheTTL,
		Logger: logger,
	})
	if err != nil {
		closer()
		return nil, nil, err
	}

	// a restart may come with new roster data
	if err := cached.Invalidate(ctx); err != nil {
		logger.Warn("could not clear roster cache", zap.Error(err))
	}

	return cached, closer, nil
}

// interceptorLogger adapts zap to the go-grpc-middleware logging interface
func interceptorLogger(l *zap.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(_ context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		zapFields := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				key = fmt.Sprint(fields[i])
			}
			zapFields = append(zapFields, zap.Any(key, fields[i+1]))
		}

		logger := l.WithOptions(zap.AddCallerSkip(1))
		switch lvl {
		case grpc_logging.LevelDebug:
			logger.Debug(msg, zapFields...)
		case grpc_logging.LevelInfo:
			logger.Info(msg, zapFields...)
		case grpc_logging.LevelWarn:
			logger.Warn(msg, zapFields...)
		case grpc_logging.LevelError:
			logger.Error(msg, zapFields...)
		default:
			logger.Info(msg, append(zapFields, zap.Int("level", int(lvl)))...)
		}
	})
}
