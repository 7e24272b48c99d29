package performance

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

var reportColumns = []struct {
	title string
	width float64
}{
	{"Employee", 50},
	{"Reviewer", 50},
	{"Status", 28},
	{"Self", 14},
	{"Manager", 18},
	{"Overall", 18},
}

// renderCycleReport lays out one row per review. Ratings not yet submitted
// print as "-".
func renderCycleReport(cycle ReviewCycle, reviews []Review) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(cycle.Name, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Performance review report")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Cycle: %s", cycle.Name))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Period: %s to %s", cycle.StartDate.Format(dateLayout), cycle.EndDate.Format(dateLayout)))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Status: %s    Reviews: %d", cycle.Status, len(reviews)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range reportColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, rv := range reviews {
		cells := []string{
			rv.Employee.FullName(),
			rv.Reviewer.FullName(),
			rv.Status,
			ratingText(rv.SelfRating),
			ratingText(rv.ManagerRating),
			ratingText(rv.OverallRating),
		}
		for i, col := range reportColumns {
			pdf.CellFormat(col.width, 7, cells[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("performance: render report: %w", err)
	}
	return buf.Bytes(), nil
}

func ratingText(r *int) string {
	if r == nil {
		return "-"
	}
	return strconv.Itoa(*r)
}
