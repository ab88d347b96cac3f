package report

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const pdfTitle = "Drilling Operations Alert Summary"

// PDF renders the report as a PDF document with bulleted "Alerts" and
// "Recommendations" sections.
func (r Report) PDF() ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(200, 10, pdfTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	writeSection(pdf, "Alerts", r.Alerts)
	pdf.Ln(5)
	writeSection(pdf, "Recommendations", r.Recommendations)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSection(pdf *fpdf.Fpdf, title string, lines []string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(200, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	for _, line := range lines {
		pdf.MultiCell(0, 10, "- "+line, "", "L", false)
	}
}
