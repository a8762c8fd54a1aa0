package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"devlavka/internal/app/store/config"
	"devlavka/internal/app/store/util"
	"devlavka/pkg/logger"
)

// createUsersTable создает таблицу пользователей, если ее еще нет.
// Каталог и заказы мигрируются GORM-ом при старте API, таблица
// пользователей живет отдельно и создается этим скриптом.
const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	username VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT true,
	role VARCHAR(50) NOT NULL DEFAULT 'admin',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// upsertAdmin создает администратора или обновляет пароль существующего
const upsertAdmin = `
INSERT INTO users (id, username, password_hash, is_active, role, created_at, updated_at)
VALUES ($1, $2, $3, true, 'admin', NOW(), NOW())
ON CONFLICT (username) DO UPDATE
SET password_hash = EXCLUDED.password_hash, is_active = true, updated_at = NOW()`

func main() {
	username := flag.String("username", os.Getenv("ADMIN_USERNAME"), "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	logger.Init("createadmin", "info")

	if *username == "" || *password == "" {
		logger.Fatal().Msg("Both -username and -password are required (or ADMIN_USERNAME/ADMIN_PASSWORD)")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User, cfg.Database.Password,
		cfg.Database.Host, cfg.Database.Port,
		cfg.Database.DBName, cfg.Database.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to ping database")
	}

	if _, err := pool.Exec(ctx, createUsersTable); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create users table")
	}

	hash, err := util.HashPassword(*password)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to hash password")
	}

	if _, err := pool.Exec(ctx, upsertAdmin, uuid.New(), *username, hash); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create admin user")
	}

	logger.Info().Str("username", *username).Msg("Admin user created")
}
