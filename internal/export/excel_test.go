package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fleet-safety/eventsync/internal/domain"
)

func TestWriteReport(t *testing.T) {
	duration := int64(150)
	rows := []domain.EventRow{
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
			Origin:    domain.OriginAlertIncident,
			Driver:    "Desconocido",
			Vehicle:   "V2",
			Label:     "Límite de Velocidad Máxima superada",
			LocalTime: "2024-01-15 04:00:00",
			Duration:  &duration,
		},
	}

	dir := t.TempDir()
	path, err := WriteReport(rows, dir, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Eventos_Samsara_2024-01-15.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, reportHeader, got[0])
	assert.Equal(t, "Safety Event", got[1][0])
	assert.Equal(t, "Juan", got[1][1])
	assert.Equal(t, "frenada brusca", got[1][7])
	assert.Equal(t, domain.ClassHarshDriving, got[1][10])

	assert.Equal(t, "Alert Incident", got[2][0])
	assert.Equal(t, "150", got[2][9])
}

func TestWriteReport_EmptyBatchStillWritesHeader(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteReport(nil, dir, "2024-01-15")
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, reportHeader, got[0])
}
