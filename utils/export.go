package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"go-cropadvisor/models"
)

const recordsSheet = "records"

var recordHeaders = []string{
	"Record ID", "Created At", "District", "Season", "Predicted Crop", "Vulnerability",
	"N", "P", "K", "Temperature", "Humidity", "pH", "Rainfall",
}

// ExportRecords 把预测记录写成 xlsx
func ExportRecords(records []models.PredictionRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", recordsSheet); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := f.SetSheetRow(recordsSheet, "A1", &recordHeaders); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		row := []any{
			r.PublicID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.District, r.Season,
			r.PredictedCrop, r.Vulnerability,
			r.Inputs.N, r.Inputs.P, r.Inputs.K, r.Inputs.Temp, r.Inputs.Humidity, r.Inputs.Ph, r.Inputs.Rainfall,
		}
		if err := f.SetSheetRow(recordsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return buf.Bytes(), nil
}
