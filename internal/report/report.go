// Package report renders a completed calculation as a downloadable
// document. Two formats are supported: CSV for the monthly series and
// PDF for the full analysis report.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
)

// WriteCSV writes the monthly projection series with a trailing annual
// row. Costs are in dollars, energy in kWh.
func WriteCSV(w io.Writer, calc domain.Calculation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"month", "cost_usd", "energy_kwh"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range calc.Projections {
		row := []string{
			p.Month,
			strconv.FormatFloat(p.Cost, 'f', 2, 64),
			strconv.FormatFloat(p.EnergyUsage, 'f', 1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	annual := []string{
		"annual",
		strconv.FormatFloat(calc.Summary.AnnualCost, 'f', 2, 64),
		strconv.FormatFloat(calc.Summary.AnnualEnergyUsage, 'f', 1, 64),
	}
	if err := cw.Write(annual); err != nil {
		return fmt.Errorf("write csv annual row: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

const (
	pdfMargin    = 18.0
	pdfLineH     = 7.0
	pdfTableCol  = 87.0 // half of A4 content width at 18mm margins
	pdfFooterPos = -20.0
)

// WritePDF renders the full analysis report: summary, key metrics,
// system specifications, the monthly table, and upgrade recommendations.
func WritePDF(w io.Writer, calc domain.Calculation) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 25)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(pdfFooterPos)
		pdf.SetDrawColor(180, 180, 180)
		pageW, _ := pdf.GetPageSize()
		pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(100, 5, "Generated by AC Cost Service", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "R", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Report ID: %s | %s",
			shortID(calc.ID), calc.CreatedAt.Format("2006-01-02 15:04 MST")), "", 1, "L", false, 0, "")
	})
	pdf.AddPage()

	// Title line with the report date on the right.
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(120, 10, "AC Cost Analysis Report", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 10, calc.CreatedAt.Format("Jan 2, 2006"), "", 1, "R", false, 0, "")
	pdf.SetDrawColor(180, 180, 180)
	pageW, _ := pdf.GetPageSize()
	pdf.Line(pdfMargin, pdf.GetY()+2, pageW-pdfMargin, pdf.GetY()+2)
	pdf.Ln(8)

	sectionHeader(pdf, "Executive Summary")
	bodyLine(pdf, fmt.Sprintf("Location: %s", calc.Location.DisplayName))
	bodyLine(pdf, fmt.Sprintf("Home Size: %s sq ft", groupThousands(calc.Home.SquareFootage)))
	bodyLine(pdf, fmt.Sprintf("Current Conditions: %.0f F, %.0f%% humidity",
		calc.Conditions.Temperature, calc.Conditions.Humidity))
	bodyLine(pdf, fmt.Sprintf("Selected Unit: %s (SEER2 %g)", unitLabel(calc.Equipment), calc.Equipment.SEER2))
	bodyLine(pdf, fmt.Sprintf("Temperature Series: %s", calc.TemperatureSource))
	pdf.Ln(4)

	sectionHeader(pdf, "Key Metrics")
	tableRow(pdf, "Metric", "Value", true)
	tableRow(pdf, "Daily Cost", dollars(calc.Summary.DailyCost), false)
	tableRow(pdf, "Monthly Cost", dollars(calc.Summary.MonthlyCost), false)
	tableRow(pdf, "Annual Cost", dollars(calc.Summary.AnnualCost), false)
	tableRow(pdf, "Energy Usage", fmt.Sprintf("%.1f kWh/day", calc.Summary.DailyEnergyUsage), false)
	pdf.Ln(4)

	sectionHeader(pdf, "System Specifications")
	tableRow(pdf, "Spec", "Value", true)
	tableRow(pdf, "Home Size", fmt.Sprintf("%s sq ft", groupThousands(calc.Home.SquareFootage)), false)
	tableRow(pdf, "Thermostat", fmt.Sprintf("%.0f F", calc.Home.ThermostatSetpoint), false)
	tableRow(pdf, "Insulation", capitalize(string(calc.Home.Insulation)), false)
	tableRow(pdf, "Operating Hours", fmt.Sprintf("%g hrs/day", calc.Home.OperatingHoursPerDay), false)
	tableRow(pdf, "AC Unit", unitLabel(calc.Equipment), false)
	tableRow(pdf, "SEER2 Rating", strconv.FormatFloat(calc.Equipment.SEER2, 'g', -1, 64), false)
	tableRow(pdf, "BTU Capacity", fmt.Sprintf("%s BTU/hr", groupThousands(calc.BTURequirement)), false)
	tableRow(pdf, "Electricity Rate", fmt.Sprintf("$%.3f/kWh", calc.RatePerKWh), false)
	pdf.Ln(4)

	sectionHeader(pdf, "Monthly Cost Projections")
	tableRow(pdf, "Month", "Cost", true)
	for _, p := range calc.Projections {
		tableRow(pdf, p.Month, dollars(p.Cost), false)
	}
	pdf.Ln(4)

	sectionHeader(pdf, "Recommendations")
	for _, rec := range recommendations {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("- [%s] %s", rec.priority, rec.text), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// FileName builds a download name like AC_Analysis_Austin_TX_Trane_2026-07-04.pdf.
func FileName(calc domain.Calculation, ext string) string {
	parts := []string{"AC_Analysis", sanitize(calc.Location.DisplayName)}
	if calc.Equipment.Brand != "" {
		parts = append(parts, sanitize(calc.Equipment.Brand))
	}
	parts = append(parts, calc.CreatedAt.Format("2006-01-02"))
	return strings.Join(parts, "_") + "." + ext
}

var recommendations = []struct {
	priority string
	text     string
}{
	{"HIGH", "Upgrade to SEER2 18+ for 20-30% energy savings"},
	{"MEDIUM", "Improve home insulation to reduce cooling load"},
	{"MEDIUM", "Install programmable thermostat for schedule optimization"},
	{"LOW", "Regular maintenance maintains peak efficiency"},
}

func sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 15)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(200, 200, 200)
	pageW, _ := pdf.GetPageSize()
	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(3)
}

func bodyLine(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, pdfLineH, text, "", 1, "L", false, 0, "")
}

func tableRow(pdf *fpdf.Fpdf, left, right string, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 10)
	pdf.CellFormat(pdfTableCol, 6, left, "", 0, "L", false, 0, "")
	pdf.CellFormat(pdfTableCol, 6, right, "", 1, "L", false, 0, "")
}

func unitLabel(eq domain.EquipmentProfile) string {
	if eq.Brand == "" {
		return "Custom system"
	}
	return strings.TrimSpace(eq.Brand + " " + eq.Model)
}

func dollars(amount float64) string {
	return "$" + groupThousands(amount)
}

// groupThousands formats a rounded value with comma separators, e.g. 60,500.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if neg {
		out = "-" + out
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func sanitize(s string) string {
	return strings.Trim(nonAlnum.ReplaceAllString(s, "_"), "_")
}
