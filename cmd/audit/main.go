package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sdh-lhota/duty-roster/backend/internal/config"
	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/repository"

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

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("failed to connect to the database", "error", err)
		return
	}

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

	q, err := ch.QueueDeclare(
		domain.EventQueue,
		true,  // durable, events must survive a broker restart
		false, // do not auto-delete when the consumer disconnects
		false,
		false, // wait for the broker to confirm the declaration
		nil,
	)
	if err != nil {
		logger.Error("failed to declare the event queue", "error", err)
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",    // let the broker assign a consumer tag
		false, // manual ack, an event is gone only once it is stored
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to consume messages", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				event := domain.RosterEvent{}
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					logger.Error("failed to decode roster event", slog.String("error", err.Error()))
					// malformed body, requeueing would loop forever
					_ = msg.Nack(false, false)
					continue
				}

				if err := repo.InsertAuditEvent(&event); err != nil {
					logger.Error("failed to store roster event", slog.String("error", err.Error()), slog.String("id", event.ID))
					// database hiccup, retry later
					_ = msg.Nack(false, true)
					continue
				}

				logger.Info("roster event recorded",
					slog.String("id", event.ID),
					slog.String("type", string(event.Type)),
					slog.String("month", event.Month),
					slog.String("actor", event.ActorUID),
				)
				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("audit worker started", "queue", q.Name)

	<-sigChan
	logger.Info("shutting down audit worker...")
	cancel()
	wg.Wait()
	logger.Info("audit worker stopped")
}
