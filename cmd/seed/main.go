package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/sdh-lhota/duty-roster/backend/internal/config"
	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/repository"
	"github.com/sdh-lhota/duty-roster/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var monthID string
	var members int

	flag.StringVar(&monthID, "month", "", "month to seed as YYYY-MM (default: SEED_MONTH or the current month)")
	flag.IntVar(&members, "members", 0, "number of demo members to generate (default: SEED_MEMBERS)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if monthID == "" {
		monthID = cfg.Seed.Month
	}
	if monthID == "" {
		now := time.Now()
		monthID = domain.FormatMonthID(now.Year(), now.Month())
	}
	if _, _, err := domain.ParseMonthID(monthID); err != nil {
		logger.Error("invalid month", slog.String("month", monthID), slog.String("error", err.Error()))
		os.Exit(1)
	}
	if members <= 0 {
		members = cfg.Seed.Members
	}

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

	repo := repository.NewRepository(cfg, dbpool)
	if err := repo.EnsureSchema(); err != nil {
		logger.Error("failed to ensure database schema", "error", err)
		return
	}

	brigade := seed.GenerateMembers(members)
	if err := seed.SeedMonth(repo, monthID, brigade); err != nil {
		logger.Error("failed to seed the month", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
