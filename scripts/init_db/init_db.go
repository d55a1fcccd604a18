package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"fleet-safety/eventsync/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using system environment variables")
	}

	cfg := config.Load()
	if cfg.SQLServer == "" || cfg.SQLDatabase == "" || cfg.SQLUser == "" || cfg.SQLPassword == "" {
		log.Fatal("SQL_SERVER, SQL_DB, SQL_USER and SQL_PASS must be set")
	}

	ctx := context.Background()

	fmt.Println("Connecting to Postgres...")
	conn, err := pgx.Connect(ctx, cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Connection failed: %v", err)
	}
	defer conn.Close(ctx)
	fmt.Println("✓ Connected")

	step1_events_table(ctx, conn)
	step2_indexes(ctx, conn)
	step3_verify(ctx, conn)

	fmt.Println("\n✅ Database initialised successfully")
}

// ─────────────────────────────────────────────────────────────
// Step 1 — fleet_events table
// ─────────────────────────────────────────────────────────────
func step1_events_table(ctx context.Context, conn *pgx.Conn) {
	fmt.Println("\n── Step 1: fleet_events table ──────────────────")

	execOrFatal(ctx, conn, `
		CREATE TABLE IF NOT EXISTS fleet_events (

			-- Generated per row at insert time
			id                  UUID        PRIMARY KEY,

			-- 'Safety Event' | 'Alert Incident'
			origen              TEXT        NOT NULL,

			conductor           TEXT        NOT NULL,
			unidad              TEXT        NOT NULL,

			-- Tag-directory enrichment; 'Desconocido' when unmapped
			proyecto_conductor  TEXT        NOT NULL,
			ec_conductor        TEXT        NOT NULL,
			proyecto_vehiculo   TEXT        NOT NULL,
			ec_vehiculo         TEXT        NOT NULL,

			-- Final label, post-translation
			tipo_evento         TEXT        NOT NULL,

			-- Local civil time, 'YYYY-MM-DD HH:MM:SS', or the raw
			-- API string when it could not be parsed
			tiempo              TEXT        NOT NULL,

			-- Whole seconds; NULL for safety events
			duracion            BIGINT,

			-- Classification UUID, or '' when unclassified
			id_evento           TEXT        NOT NULL DEFAULT '',

			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`, "fleet_events table created")
}

// ─────────────────────────────────────────────────────────────
// Step 2 — Indexes
// ─────────────────────────────────────────────────────────────
func step2_indexes(ctx context.Context, conn *pgx.Conn) {
	fmt.Println("\n── Step 2: Indexes ─────────────────────────────")

	indexes := []struct {
		name string
		sql  string
		why  string
	}{
		{
			name: "idx_fleet_events_tiempo",
			sql: `CREATE INDEX IF NOT EXISTS idx_fleet_events_tiempo
				  ON fleet_events (tiempo);`,
			why: "query: events for a local date range",
		},
		{
			name: "idx_fleet_events_id_evento",
			sql: `CREATE INDEX IF NOT EXISTS idx_fleet_events_id_evento
				  ON fleet_events (id_evento);`,
			why: "query: events by classification",
		},
		{
			name: "idx_fleet_events_conductor",
			sql: `CREATE INDEX IF NOT EXISTS idx_fleet_events_conductor
				  ON fleet_events (conductor, created_at DESC);`,
			why: "query: history for one driver",
		},
	}

	for _, idx := range indexes {
		execOrFatal(ctx, conn, idx.sql,
			fmt.Sprintf("%-30s ← %s", idx.name, idx.why),
		)
	}
}

// ─────────────────────────────────────────────────────────────
// Step 3 — Verify
// ─────────────────────────────────────────────────────────────
func step3_verify(ctx context.Context, conn *pgx.Conn) {
	fmt.Println("\n── Step 3: Verification ────────────────────────")

	var exists bool
	err := conn.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_name = 'fleet_events'
		)
	`).Scan(&exists)
	if err != nil || !exists {
		log.Fatalf("fleet_events table was not created: %v", err)
	}
	fmt.Println("  ✓ table: fleet_events")

	var indexCount int
	err = conn.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM pg_indexes
		WHERE tablename = 'fleet_events'
		AND indexname LIKE 'idx_%'
	`).Scan(&indexCount)
	if err != nil {
		log.Fatalf("Index check failed: %v", err)
	}
	fmt.Printf("  ✓ indexes created: %d\n", indexCount)
}

func execOrFatal(ctx context.Context, conn *pgx.Conn, sql, label string) {
	_, err := conn.Exec(ctx, sql)
	if err != nil {
		log.Fatalf("FAILED — %s\nError: %v\nSQL: %s", label, err, sql)
	}
	fmt.Printf("  ✓ %s\n", label)
}
