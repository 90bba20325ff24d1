package registration

import (
	"context"
	"fmt"
	"io"

	"klinik-sentosa-server/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the name of the worksheet holding the patient table.
const ExportSheet = "Daftar Pasien"

var exportHeaders = []string{
	"Nama Lengkap",
	"Tanggal Lahir",
	"Jenis Kelamin",
	"No. Telepon",
	"Alamat",
	"No. Identitas",
}

var exportWidths = []float64{30, 15, 15, 18, 40, 22}

// ExportPatients writes the patients matching term as an .xlsx workbook.
func (w *Workflow) ExportPatients(ctx context.Context, term string, out io.Writer) (int, error) {
	patients, err := w.ListPatients(ctx)
	if err != nil {
		return 0, fmt.Errorf("list patients for export: %w", err)
	}
	patients = Filter(patients, term)

	f, err := buildWorkbook(patients)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if _, err := f.WriteTo(out); err != nil {
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(patients), nil
}

func buildWorkbook(patients []models.Patient) (*excelize.File, error) {
	f := excelize.NewFile()

	// Reuse the default sheet so the workbook holds exactly one.
	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range exportHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := setCell(f, i+1, 1, header); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellStyle(ExportSheet, col+"1", col+"1", headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		if err := f.SetColWidth(ExportSheet, col, col, exportWidths[i]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, p := range patients {
		row := i + 2
		values := []interface{}{
			p.FullName,
			p.BirthDate.String(),
			string(p.Gender),
			p.Phone,
			p.Address,
			"",
		}
		if p.NationalID != nil {
			values[5] = *p.NationalID
		}
		for col, value := range values {
			if err := setCell(f, col+1, row, value); err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	if err := f.SetPanes(ExportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}
	return f, nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(ExportSheet, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
