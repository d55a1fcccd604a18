// Package export writes the run's rows as a spreadsheet report, the
// alternative sink to the database insert.
package export

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"fleet-safety/eventsync/internal/domain"
)

const sheetName = "Eventos"

// Header matches the report the job historically produced; the generated
// database id has no column here.
var reportHeader = []string{
	"Origen",
	"nombre de conductor",
	"unidad",
	"Proyecto Conductor",
	"Equipo Colaborativo Conductor",
	"Proyecto Vehículo",
	"Equipo Colaborativo Vehículo",
	"Event Label",
	"tiempo",
	"Duración",
	"id_evento",
}

// WriteReport writes one .xlsx with a styled header row and one row per
// event, named after the report date. Returns the full path written.
func WriteReport(rows []domain.EventRow, dir, reportDate string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("create header style: %w", err)
	}

	for col, h := range reportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return "", fmt.Errorf("write header: %w", err)
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(reportHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		return "", fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		var duration any // empty cell for safety events
		if row.Duration != nil {
			duration = *row.Duration
		}
		values := []any{
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
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return "", fmt.Errorf("write row %d: %w", i+1, err)
			}
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("Eventos_Samsara_%s.xlsx", reportDate))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}
