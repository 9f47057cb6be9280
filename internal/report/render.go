package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jung-kurt/gofpdf"
)

func JSON(s *Summary) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func lines(s *Summary) [][2]string {
	rows := [][2]string{
		{"Microgrid", fmt.Sprintf("%s (#%d)", s.MicrogridName, s.MicrogridID)},
		{"Periods", fmt.Sprintf("%s .. %s (%d records)", s.FirstPeriod, s.LastPeriod, s.Records)},
		{"Generated", fmt.Sprintf("%.2f kWh (%.3f MWh)", s.TotalGenerated, s.TotalGeneratedMWh)},
		{"Consumed", fmt.Sprintf("%.2f kWh (%.3f MWh)", s.TotalConsumed, s.TotalConsumedMWh)},
		{"Average delta", fmt.Sprintf("%.2f kWh", s.AverageDelta)},
		{"Generation/consumption", fmt.Sprintf("%.2f", s.Ratio)},
		{"Estimates", fmt.Sprintf("%d (average %.2f, projected %.2f)", s.Estimates, s.AverageEstimate, s.ProjectedAnnual)},
		{"Sources", fmt.Sprintf("%d (%.2f kW installed)", s.Sources, s.InstalledCapacity)},
	}
	if len(s.EstimateTrend) > 0 {
		parts := make([]string, len(s.EstimateTrend))
		for i, v := range s.EstimateTrend {
			parts[i] = fmt.Sprintf("%.2f", v)
		}
		rows = append(rows, [2]string{"Estimate trend", strings.Join(parts, " ")})
	}
	return rows
}

// RenderText writes an aligned two-column summary.
func RenderText(w io.Writer, s *Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range lines(s) {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WritePDF renders a single page A4 report.
func WritePDF(w io.Writer, s *Summary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr("Microgrid generation report"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Report %s, generated %s", s.ID, s.GeneratedAt.Format("2006-01-02 15:04 MST"))))
	pdf.Ln(10)

	pdf.SetFillColor(230, 240, 230)
	for i, row := range lines(s) {
		fill := i%2 == 0
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(60, 8, tr(row[0]), "", 0, "L", fill, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", fill, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}
