package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SidS12345/Family-Connections/internal/config"
	"github.com/SidS12345/Family-Connections/internal/dao/db"
	myredis "github.com/SidS12345/Family-Connections/internal/dao/redis"
	"github.com/SidS12345/Family-Connections/internal/handler"
	"github.com/SidS12345/Family-Connections/internal/https_server"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/logger"
	"github.com/SidS12345/Family-Connections/internal/infrastructure/mq"
	"github.com/SidS12345/Family-Connections/internal/service"
	"github.com/SidS12345/Family-Connections/pkg/util/jwt"
	"github.com/SidS12345/Family-Connections/pkg/util/snowflake"
)

var (
	configPath   string
	consumerName string

	rootCmd = &cobra.Command{
		Use:          "family_server",
		Short:        "Family Connections API server",
		SilenceUsage: true,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE:  runMigrate,
	}

	eventsCmd = &cobra.Command{
		Use:   "events",
		Short: "Tail the domain event topic and log every event",
		RunE:  runEvents,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config.toml (default: search configs/)")
	eventsCmd.Flags().StringVar(&consumerName, "group", "family-audit", "kafka consumer group id")

	rootCmd.AddCommand(serveCmd, migrateCmd, eventsCmd)
}

// bootstrap loads the configuration and installs the global logger.
func bootstrap() (*config.Config, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Printf("init logger failed: %v", err)
		return nil, err
	}
	return conf, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. storage
	repos, err := db.Init(&conf.DatabaseConfig)
	if err != nil {
		zap.L().Error("init database failed", zap.Error(err))
		return err
	}
	zap.L().Info("database ready", zap.String("driver", conf.DatabaseConfig.Driver))

	// 2. cache, optional
	redisCache, redisClient, err := myredis.Init(ctx, &conf.RedisConfig)
	if err != nil {
		zap.L().Error("init redis failed", zap.Error(err))
		return err
	}
	var cache myredis.AsyncCacheService
	if redisCache != nil {
		cache = redisCache
		defer func() { _ = redisClient.Close() }()
		zap.L().Info("redis cache enabled")
	} else {
		zap.L().Info("redis not configured, caching disabled")
	}

	// 3. event stream
	publisher := mq.New(&conf.KafkaConfig)
	defer func() {
		if err := publisher.Close(); err != nil {
			zap.L().Warn("close event publisher", zap.Error(err))
		}
	}()

	// 4. ids and tokens
	snowflake.Init(conf.SnowflakeConfig.MachineID)
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	if err := handler.InitTrans(); err != nil {
		return fmt.Errorf("init validator translations: %w", err)
	}

	// 5. services, handlers, engine
	svc := service.NewServices(repos, cache, time.Duration(conf.RedisConfig.CacheTTL)*time.Second, publisher)
	engine := https_server.Init(&conf.MainConfig, handler.NewHandlers(svc))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zap.L().Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		zap.L().Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server stopped with error", zap.Error(err))
		return err
	}
	zap.L().Info("server stopped")
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	conf, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	gdb, err := db.Open(&conf.DatabaseConfig)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if conf.KafkaConfig.EventMode == "kafka" {
		if err := mq.CreateTopic(&conf.KafkaConfig); err != nil {
			zap.L().Warn("create event topic", zap.String("topic", conf.KafkaConfig.Topic), zap.Error(err))
		}
	}
	zap.L().Info("schema is up to date")
	return nil
}

func runEvents(cmd *cobra.Command, _ []string) error {
	conf, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = zap.L().Sync() }()

	if conf.KafkaConfig.EventMode != "kafka" {
		return errors.New("kafkaConfig.eventMode is not \"kafka\"; no events to tail")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := mq.NewConsumer(&conf.KafkaConfig, consumerName)
	defer func() { _ = consumer.Close() }()

	return consumer.Run(ctx, func(e mq.Event) {
		fields := []zap.Field{
			zap.String("type", string(e.Type)),
			zap.Uint("actor_id", e.ActorID),
			zap.Uint("subject_id", e.SubjectID),
			zap.Uint("entity_id", e.EntityID),
			zap.Time("occurred_at", e.OccurredAt),
		}
		for k, v := range e.Detail {
			fields = append(fields, zap.String(k, v))
		}
		if e.Type == mq.EventForbidden {
			zap.L().Warn("security event", fields...)
			return
		}
		zap.L().Info("domain event", fields...)
	})
}
