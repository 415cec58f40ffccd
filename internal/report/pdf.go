package report

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF renders the run log as a one-page-flow PDF summary: a heading,
// then per page its URL, image count, and saved filenames. This is
// intentionally simple and mirrors the CSV content rather than attempting
// real table layout.
func (w *Writer) WritePDF(path string, title string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, r := range w.rows {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.MultiCell(0, 5, r.PageURL, "", "L", false)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, fmt.Sprintf("Images saved: %d", len(r.Saved)), "", 1, "L", false, 0, "")
		for _, name := range r.Saved {
			pdf.CellFormat(0, 5, name, "", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	return pdf.OutputFileAndClose(path)
}
