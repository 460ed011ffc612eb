package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [up|drop|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("✅ All tables created successfully")

	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("✅ All tables dropped successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("✅ Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [up|drop|seed]")
		os.Exit(1)
	}
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS channels (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			custom_url TEXT,
			thumbnail_url TEXT,
			etag TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS channel_stats (
			channel_id TEXT PRIMARY KEY REFERENCES channels(id),
			subscriber_count BIGINT,
			view_count BIGINT,
			video_count BIGINT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_channel_stats_subscribers
			ON channel_stats (subscriber_count)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("exec failed: %w", err)
		}
	}

	return nil
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS channel_stats`,
		`DROP TABLE IF EXISTS channels`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("exec failed: %w", err)
		}
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	channels := `
		INSERT INTO channels (id, title, custom_url, thumbnail_url, etag)
		VALUES
			('UCseed000000000000000001', 'Sawdust Weekly', '@sawdustweekly', NULL, NULL),
			('UCseed000000000000000002', 'The Joinery Shop', '@joineryshop', NULL, NULL),
			('UCseed000000000000000003', 'Grain & Gouge', NULL, NULL, NULL)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := conn.Exec(ctx, channels); err != nil {
		return fmt.Errorf("failed to seed channels: %w", err)
	}

	stats := `
		INSERT INTO channel_stats (channel_id, subscriber_count, view_count, video_count)
		VALUES
			('UCseed000000000000000001', 100, 12000, 34),
			('UCseed000000000000000002', 1000, 250000, 120),
			('UCseed000000000000000003', 5000, 900000, 310)
		ON CONFLICT (channel_id) DO NOTHING
	`
	if _, err := conn.Exec(ctx, stats); err != nil {
		return fmt.Errorf("failed to seed channel stats: %w", err)
	}

	return nil
}
