package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Report is a titled document: a block of label/value facts above a table.
type Report struct {
	Title string
	Facts [][2]string
	Table Dataset
}

// PDFExporter renders reports into a basic A4 PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays out the title, the facts block and the table body.
func (e *PDFExporter) Render(report Report) ([]byte, error) {
	if report.Title == "" && len(report.Facts) == 0 && len(report.Table.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires a title, facts or a table")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetTitle(report.Title, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if report.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(report.Title)), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	if len(report.Facts) > 0 {
		for _, fact := range report.Facts {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(45, 6, tr(fact[0]), "", 0, "", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, tr(fact[1]), "", "", false)
		}
		pdf.Ln(4)
	}

	if len(report.Table.Headers) > 0 {
		pdf.SetFont("Arial", "B", 10)
		colWidth := 190.0 / float64(len(report.Table.Headers))
		for _, header := range report.Table.Headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		if len(report.Table.Rows) == 0 {
			pdf.CellFormat(190, 7, "No records", "1", 1, "C", false, 0, "")
		}
		for _, row := range report.Table.Rows {
			for _, header := range report.Table.Headers {
				pdf.CellFormat(colWidth, 7, tr(row[header]), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
