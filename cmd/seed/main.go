package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"workgate/internal/config"
	pg "workgate/internal/infra/db/postgres"
)

// Schema bootstrap for local/dev environments. Idempotent: everything is
// CREATE ... IF NOT EXISTS.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		phone         TEXT NOT NULL DEFAULT '',
		role          VARCHAR(20) NOT NULL,
		paid          BOOLEAN NOT NULL DEFAULT FALSE,
		referral_code TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id           UUID PRIMARY KEY,
		user_id      UUID REFERENCES users(id) ON DELETE CASCADE,
		payment_id   TEXT,
		order_id     TEXT,
		signature    TEXT,
		amount_paise BIGINT NOT NULL DEFAULT 0,
		status       VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS transactions_payment_id_key ON transactions (payment_id);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS transactions_order_id_key ON transactions (order_id);`,
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("exec schema statement: %v", err)
		}
	}
	fmt.Println("schema is up to date.")
}
