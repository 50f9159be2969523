package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/sdh-lhota/duty-roster/backend/internal/config"
	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/handler"
	"github.com/sdh-lhota/duty-roster/backend/internal/repository"
	"github.com/sdh-lhota/duty-roster/backend/internal/watch"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return
	}

	/**********************************************
	 * database
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not connect; ping explicitly
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

	/**********************************************
	 * repository + schema
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.EnsureSchema(); err != nil {
		logger.Error("failed to ensure database schema", "error", err)
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open a channel", "error", err)
		return
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		domain.EventQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to declare the event queue", "error", err)
		return
	}

	/**********************************************
	 * redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
	hub := watch.NewHub(rdb)

	/**********************************************
	 * handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, ch, rdb, hub)
	if err != nil {
		logger.Error("failed to create handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * HTTP server
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("failed to start server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("shutting down server...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("failed to shut down server", slog.String("error", err.Error()))
	}
	logger.Info("server stopped")
}
