package export

import (
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

const (
	pdfRowHeight  = 7.0
	pdfFontFamily = "Helvetica"
)

// pdfColumnWidths in millimetres for an A4 portrait page with 10mm margins
var pdfColumnWidths = []float64{55, 28, 22, 22, 63}

// PDFRenderer writes a titled table followed by the totals block
type PDFRenderer struct {
	opts Options
}

// Render implements Renderer
func (r *PDFRenderer) Render(w io.Writer, rep *report.Report, l *i18n.Localizer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)

	// Core fonts are cp1252; accented names must be translated first
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := l.T("report.title")
	pdf.SetTitle(title, true)
	if r.opts.CompanyName != "" {
		pdf.SetAuthor(r.opts.CompanyName, true)
	}
	if !rep.GeneratedAt.IsZero() {
		pdf.SetCreationDate(rep.GeneratedAt)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(pdfFontFamily, "I", 8)
		pdf.SetTextColor(128, 128, 128)
		page := l.T("report.page", map[string]string{"page": strconv.Itoa(pdf.PageNo())})
		pdf.CellFormat(0, 8, tr(page), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	if r.opts.CompanyName != "" {
		pdf.SetFont(pdfFontFamily, "", 10)
		pdf.CellFormat(0, 6, tr(r.opts.CompanyName), "", 1, "L", false, 0, "")
	}

	pdf.SetFont(pdfFontFamily, "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	pdf.SetFont(pdfFontFamily, "", 10)
	pdf.CellFormat(0, 6, tr(rep.Subject(l)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, tr(rep.Period(l)), "", 1, "C", false, 0, "")
	if !rep.GeneratedAt.IsZero() {
		generated := l.T("report.generated", map[string]string{"date": rep.GeneratedAt.Format(time.DateOnly)})
		pdf.CellFormat(0, 6, tr(generated), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	writeHeaderRow := func() {
		pdf.SetFont(pdfFontFamily, "B", 10)
		pdf.SetFillColor(220, 220, 220)
		pdf.SetTextColor(0, 0, 0)
		for i, caption := range report.TableHeader(l) {
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(caption), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}
	writeHeaderRow()

	pdf.SetFont(pdfFontFamily, "", 9)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, e := range rep.Entries {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			writeHeaderRow()
			pdf.SetFont(pdfFontFamily, "", 9)
		}

		fill := report.Highlighted(e)
		if fill {
			pdf.SetFillColor(255, 242, 204)
		}
		for i, value := range report.TableRow(l, e) {
			align := "C"
			if i == 0 || i == len(pdfColumnWidths)-1 {
				align = "L"
			}
			pdf.CellFormat(pdfColumnWidths[i], pdfRowHeight, tr(value), "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont(pdfFontFamily, "B", 12)
	pdf.CellFormat(0, 8, tr(l.T("report.totals")), "", 1, "L", false, 0, "")

	pdf.SetFont(pdfFontFamily, "", 10)
	for _, line := range rep.TotalsLines(l) {
		pdf.CellFormat(70, 6, tr(line[0]+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tr(line[1]), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
