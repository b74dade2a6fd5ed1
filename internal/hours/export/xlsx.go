package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// highlightColor marks worked holiday rows in every document format
const highlightColor = "FFFFF2CC"

// XLSXRenderer writes a workbook with a report sheet and a totals sheet
type XLSXRenderer struct{}

// Render implements Renderer
func (XLSXRenderer) Render(w io.Writer, rep *report.Report, l *i18n.Localizer) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(l.T("report.sheet"))
	if err != nil {
		return fmt.Errorf("add report sheet: %w", err)
	}
	if err := setHeader(sheet, report.TableHeader(l), []float64{28, 12, 10, 10, 30}); err != nil {
		return err
	}

	highlight := xlsx.NewStyle()
	highlight.Fill = *xlsx.NewFill("solid", highlightColor, highlightColor)
	highlight.ApplyFill = true

	for _, e := range rep.Entries {
		row := sheet.AddRow()
		for _, value := range report.TableRow(l, e) {
			cell := row.AddCell()
			cell.SetString(value)
			if report.Highlighted(e) {
				cell.SetStyle(highlight)
			}
		}
	}

	totals, err := file.AddSheet(l.T("report.totals_sheet"))
	if err != nil {
		return fmt.Errorf("add totals sheet: %w", err)
	}
	if err := setHeader(totals, []string{l.T("report.label"), l.T("report.value")}, []float64{28, 14}); err != nil {
		return err
	}
	for _, line := range rep.TotalsLines(l) {
		row := totals.AddRow()
		row.AddCell().SetString(line[0])
		row.AddCell().SetString(line[1])
	}

	return file.Write(w)
}

// setHeader writes a bold caption row and sizes the columns
func setHeader(sheet *xlsx.Sheet, captions []string, widths []float64) error {
	style := xlsx.NewStyle()

	font := xlsx.DefaultFont()
	font.Bold = true

	alignment := xlsx.DefaultAlignment()
	alignment.Vertical = "center"

	style.Font = *font
	style.Alignment = *alignment
	style.ApplyFont = true
	style.ApplyAlignment = true

	row := sheet.AddRow()
	row.SetHeightCM(0.8)
	for _, caption := range captions {
		cell := row.AddCell()
		cell.SetString(caption)
		cell.SetStyle(style)
	}

	for i, width := range widths {
		if err := sheet.SetColWidth(i, i, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return nil
}
