package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Row records the outcome for one input page: how many images were saved
// and under which filenames, in download order.
type Row struct {
	PageURL string
	Saved   []string
}

// Writer accumulates one Row per processed page and serializes the run log
// at the end. The CSV layout pads every row to the widest image count seen
// so the header and all rows share one column set.
type Writer struct {
	rows []Row
}

// Append records the result for one page. Pages with zero images still get
// a row; the report always covers every input URL.
func (w *Writer) Append(pageURL string, saved []string) {
	w.rows = append(w.rows, Row{PageURL: pageURL, Saved: saved})
}

// maxImages is the widest saved-image count across all rows.
func (w *Writer) maxImages() int {
	max := 0
	for _, r := range w.rows {
		if len(r.Saved) > max {
			max = len(r.Saved)
		}
	}
	return max
}

// WriteCSV writes the run log with columns URL, Number of Images, then one
// Image N Name column per image up to the maximum count; shorter rows are
// padded with empty cells.
func (w *Writer) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	width := w.maxImages()

	header := []string{"URL", "Number of Images"}
	for i := 1; i <= width; i++ {
		header = append(header, fmt.Sprintf("Image %d Name", i))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range w.rows {
		record := make([]string, 0, 2+width)
		record = append(record, r.PageURL, strconv.Itoa(len(r.Saved)))
		record = append(record, r.Saved...)
		for len(record) < 2+width {
			record = append(record, "")
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
