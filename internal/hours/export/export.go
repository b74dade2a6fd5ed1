// Package export renders reports as downloadable documents.
package export

import (
	"bytes"
	"io"
	"strings"

	"github.com/controlhoras/hours-backend/internal/hours/report"
	"github.com/controlhoras/hours-backend/pkg/errors"
	"github.com/controlhoras/hours-backend/pkg/i18n"
)

// Format is a document format
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Formats lists the supported formats
var Formats = []Format{FormatPDF, FormatXLSX, FormatCSV}

var contentTypes = map[Format]string{
	FormatPDF:  "application/pdf",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatCSV:  "text/csv; charset=utf-8",
}

// ParseFormat resolves a case-insensitive format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := contentTypes[f]; !ok {
		return "", errors.UnsupportedFormat(s)
	}
	return f, nil
}

// ContentType returns the MIME type of f
func (f Format) ContentType() string {
	return contentTypes[f]
}

// Extension returns the file extension of f without the dot
func (f Format) Extension() string {
	return string(f)
}

// Options tune document rendering
type Options struct {
	// CompanyName is printed above the PDF title when set
	CompanyName string
}

// Renderer writes a report to w
type Renderer interface {
	Render(w io.Writer, rep *report.Report, l *i18n.Localizer) error
}

// NewRenderer returns the renderer for f
func NewRenderer(f Format, opts Options) (Renderer, error) {
	switch f {
	case FormatPDF:
		return &PDFRenderer{opts: opts}, nil
	case FormatXLSX:
		return &XLSXRenderer{}, nil
	case FormatCSV:
		return &CSVRenderer{}, nil
	default:
		return nil, errors.UnsupportedFormat(string(f))
	}
}

// File is a rendered document ready for download or disk
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Render renders rep in format f and names the result after the report
func Render(f Format, rep *report.Report, l *i18n.Localizer, opts Options) (*File, error) {
	renderer, err := NewRenderer(f, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, rep, l); err != nil {
		return nil, errors.Internal("failed to render report").WithCause(err)
	}

	return &File{
		Name:        rep.SuggestedFileName(l, f.Extension()),
		ContentType: f.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
