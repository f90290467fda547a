package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/wellnest-hq/wellness-api/internal/repository"
	"github.com/wellnest-hq/wellness-api/internal/server"
)

// ReportsService renders admin exports as XLSX workbooks.
type ReportsService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewReportsService(s *server.Server, repos *repository.Repositories) *ReportsService {
	return &ReportsService{
		server: s,
		repos:  repos,
	}
}

var platformReportHeaders = []string{
	"School", "Students", "Staff", "Classes", "Active Cases", "High Risk Students", "Avg Wellbeing",
}

// PlatformSummaryXLSX builds the per-school platform report as an XLSX
// workbook and returns its bytes.
func (svc *ReportsService) PlatformSummaryXLSX(ctx context.Context) ([]byte, error) {
	rows, err := svc.repos.Analytics.SchoolSummaries(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Platform Summary"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range platformReportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, errors.Wrap(err, "failed to address header cell")
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, errors.Wrap(err, "failed to write header cell")
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(platformReportHeaders), 1)
		_ = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)
	}

	for i, row := range rows {
		values := []any{
			row.Name,
			row.StudentCount,
			row.StaffCount,
			row.ClassCount,
			row.ActiveCases,
			row.HighRiskStudents,
		}
		if row.AvgWellbeing != nil {
			values = append(values, fmt.Sprintf("%.1f", *row.AvgWellbeing))
		} else {
			values = append(values, "-")
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, errors.Wrap(err, "failed to address data cell")
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, errors.Wrap(err, "failed to write data cell")
			}
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 32)
	_ = f.SetColWidth(sheet, "B", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to render report workbook")
	}

	svc.server.Logger.Info().
		Int("schools", len(rows)).
		Time("generated_at", time.Now()).
		Msg("rendered platform summary report")

	return buf.Bytes(), nil
}
