package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloglist/internal/config"
	"bloglist/internal/handlers"
	"bloglist/internal/logger"
	"bloglist/internal/mq"
	"bloglist/internal/repository"
	"bloglist/internal/repository/db"
	"bloglist/internal/server"
	"bloglist/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Get(cfg.Log.Level, cfg.Log.Format)

		conn, err := db.InitDB(cfg.DSN())
		if err != nil {
			return fmt.Errorf("init sqlite: %w", err)
		}
		defer func() {
			if cerr := conn.Close(); cerr != nil {
				log.Errorw("failed to close sqlite", "err", cerr)
			}
		}()

		pub := openPublisher(cfg.MQ, log)
		defer func() {
			if cerr := pub.Close(); cerr != nil {
				log.Warnw("failed to close publisher", "err", cerr)
			}
		}()

		services := service.NewService(repository.NewRepository(conn), service.Options{
			Secret:     cfg.Auth.Secret,
			TokenTTL:   cfg.Auth.TokenTTL,
			LikeBypass: cfg.Policy.LikeBypass,
			Publisher:  pub,
			Log:        log,
		})
		apiHandler := handlers.NewHandler(services, log)

		srv := &server.Server{}
		errCh := make(chan error, 1)
		go func() {
			log.Infow("server started", "port", cfg.Port, "env", cfg.Env)
			errCh <- srv.Run(cfg.Port, apiHandler.InitRoutes())
		}()

		return waitForShutdown(srv, errCh, log)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openPublisher connects to the broker when one is configured.
// Without a broker, or if it is unreachable, events are only stored locally.
func openPublisher(cfg config.MQConfig, log *logger.Logger) mq.Publisher {
	if cfg.URL == "" {
		return mq.Nop{}
	}
	pub, err := mq.NewRabbitMQPublisher(cfg.URL, cfg.Exchange)
	if err != nil {
		log.Warnw("rabbitmq unavailable, events will not be published", "err", err)
		return mq.Nop{}
	}
	log.Infow("publishing blog events", "exchange", cfg.Exchange)
	return pub
}

// waitForShutdown blocks until a termination signal or a server failure.
func waitForShutdown(srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("run server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
