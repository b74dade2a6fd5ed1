package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// CSVRenderer writes the entries table, a blank row and label,value totals
type CSVRenderer struct{}

// Render implements Renderer
func (CSVRenderer) Render(w io.Writer, rep *report.Report, l *i18n.Localizer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(report.TableHeader(l)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range rep.Entries {
		if err := cw.Write(report.TableRow(l, e)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	// blank separator between the table and the totals
	if err := cw.Write([]string{""}); err != nil {
		return err
	}
	if err := cw.Write([]string{l.T("report.label"), l.T("report.value")}); err != nil {
		return err
	}
	for _, line := range rep.TotalsLines(l) {
		if err := cw.Write(line[:]); err != nil {
			return fmt.Errorf("write csv totals: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
