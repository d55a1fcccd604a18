package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"fleet-safety/eventsync/internal/config"
	"fleet-safety/eventsync/internal/domain"
)

// Open connects to the destination database and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}
	return db, nil
}

// EventStore appends finished rows to the fleet_events table.
type EventStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewEventStore(db *sql.DB, log *zap.Logger) *EventStore {
	return &EventStore{db: db, log: log}
}

// Column order is fixed; a fresh id is generated per row at insert time.
const insertEventSQL = `
	INSERT INTO fleet_events
		(id, origen, conductor, unidad,
		 proyecto_conductor, ec_conductor,
		 proyecto_vehiculo, ec_vehiculo,
		 tipo_evento, tiempo, duracion, id_evento)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// InsertBatch writes the whole batch inside one transaction. Every run is a
// pure append; on any insert error the transaction rolls back and nothing
// is persisted.
func (s *EventStore) InsertBatch(ctx context.Context, rows []domain.EventRow) error {
	if len(rows) == 0 {
		s.log.Info("no rows to insert")
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertEventSQL)
	if err != nil {
		return fmt.Errorf("prepare event insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		var duration any // NULL for safety events
		if row.Duration != nil {
			duration = *row.Duration
		}
		_, err := stmt.ExecContext(ctx,
			uuid.NewString(),
			string(row.Origin),
			row.Driver,
			row.Vehicle,
			row.DriverProject,
			row.DriverTeam,
			row.VehicleProject,
			row.VehicleTeam,
			row.Label,
			row.LocalTime,
			duration,
			row.ClassificationID,
		)
		if err != nil {
			return fmt.Errorf("insert event row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	s.log.Info("event batch inserted", zap.Int("rows", len(rows)))
	return nil
}
