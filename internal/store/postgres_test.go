package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fleet-safety/eventsync/internal/domain"
)

func sampleRows() []domain.EventRow {
	duration := int64(150)
	return []domain.EventRow{
		{
			Origin:           domain.OriginSafetyEvent,
			Driver:           "Juan",
			Vehicle:          "V1",
			DriverProject:    "ProjectX",
			DriverTeam:       "TeamA",
			VehicleProject:   "ProjectX",
			VehicleTeam:      "TeamA",
			Label:            "frenada brusca",
			LocalTime:        "2024-01-15 09:30:00",
			ClassificationID: domain.ClassHarshDriving,
		},
		{
			Origin:           domain.OriginAlertIncident,
			Driver:           "Desconocido",
			Vehicle:          "V2",
			DriverProject:    "Desconocido",
			DriverTeam:       "Desconocido",
			VehicleProject:   "ProjectY",
			VehicleTeam:      "Desconocido",
			Label:            "Límite de Velocidad Máxima superada",
			LocalTime:        "2024-01-15 04:00:00",
			Duration:         &duration,
			ClassificationID: domain.ClassSpeedLimitExceeded,
		},
	}
}

func TestInsertBatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sampleRows()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO fleet_events")
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "Safety Event", "Juan", "V1",
			"ProjectX", "TeamA", "ProjectX", "TeamA",
			"frenada brusca", "2024-01-15 09:30:00", nil, domain.ClassHarshDriving).
		WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().
		WithArgs(sqlmock.AnyArg(), "Alert Incident", "Desconocido", "V2",
			"Desconocido", "Desconocido", "ProjectY", "Desconocido",
			"Límite de Velocidad Máxima superada", "2024-01-15 04:00:00",
			int64(150), domain.ClassSpeedLimitExceeded).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s := NewEventStore(db, zap.NewNop())
	require.NoError(t, s.InsertBatch(context.Background(), rows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatch_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO fleet_events")
	prep.ExpectExec().
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	s := NewEventStore(db, zap.NewNop())
	err = s.InsertBatch(context.Background(), sampleRows()[:1])

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert event row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertBatch_EmptyBatchIsNoop(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewEventStore(db, zap.NewNop())
	require.NoError(t, s.InsertBatch(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}
