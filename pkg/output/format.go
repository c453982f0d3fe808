// Package output provides utilities for formatting and displaying calculator
// reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/iwvelando/rent-vs-buy/internal/calculator"
	"github.com/iwvelando/rent-vs-buy/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type kind int

const (
	money kind = iota
	rate
	years
	flag
)

// metric is one labelled value shared by the pretty and CSV layouts.
type metric struct {
	section string
	label   string
	kind    kind
	value   func(r calculator.Report) float64
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var metrics = []metric{
	{"Mortgage", "Home value", money, func(r calculator.Report) float64 { return r.Mortgage.HomeValue }},
	{"Mortgage", "Down payment", money, func(r calculator.Report) float64 { return r.Mortgage.DownPayment }},
	{"Mortgage", "Down payment percent", rate, func(r calculator.Report) float64 { return r.Payment.DownPaymentPct }},
	{"Mortgage", "Principal", money, func(r calculator.Report) float64 { return r.Payment.Principal }},
	{"Mortgage", "Interest rate", rate, func(r calculator.Report) float64 { return r.Mortgage.InterestRate }},
	{"Mortgage", "Term (years)", years, func(r calculator.Report) float64 { return float64(r.Mortgage.TermYears) }},
	{"Monthly payment", "Principal and interest", money, func(r calculator.Report) float64 { return r.Payment.MonthlyPrincipalAndInterest }},
	{"Monthly payment", "Principal", money, func(r calculator.Report) float64 { return r.Payment.MonthlyPrincipal }},
	{"Monthly payment", "Interest", money, func(r calculator.Report) float64 { return r.Payment.MonthlyInterest }},
	{"Monthly payment", "First month principal (amortized)", money, func(r calculator.Report) float64 { return r.Payment.FirstMonthPrincipal }},
	{"Monthly payment", "First month interest (amortized)", money, func(r calculator.Report) float64 { return r.Payment.FirstMonthInterest }},
	{"Monthly payment", "Property tax", money, func(r calculator.Report) float64 { return r.Payment.MonthlyPropertyTax }},
	{"Monthly payment", "PMI", money, func(r calculator.Report) float64 { return r.Payment.MonthlyPMI }},
	{"Monthly payment", "Home insurance", money, func(r calculator.Report) float64 { return r.Payment.MonthlyHomeInsurance }},
	{"Monthly payment", "HOA", money, func(r calculator.Report) float64 { return r.Payment.MonthlyHOA }},
	{"Monthly payment", "Total", money, func(r calculator.Report) float64 { return r.Payment.MonthlyPayment }},
	{"Monthly payment", "Asset loss", money, func(r calculator.Report) float64 { return r.Payment.MonthlyAssetLoss }},
	{"Rent", "Monthly rent", money, func(r calculator.Report) float64 { return r.Rent.Rent }},
	{"Rent", "Rent per square foot", money, func(r calculator.Report) float64 { return r.Rent.RentPerSquareFoot }},
	{"Rent", "Monthly rent at retirement", money, func(r calculator.Report) float64 { return r.Rent.RentAtHorizon }},
	{"Rent", "Total rent until retirement", money, func(r calculator.Report) float64 { return r.Rent.TotalRentAtHorizon }},
	{"Buying: savings at retirement", "Additional monthly contribution", money, func(r calculator.Report) float64 { return r.OwnProjection.AdditionalContribution }},
	{"Buying: savings at retirement", "Total monthly contribution", money, func(r calculator.Report) float64 { return r.OwnProjection.TotalMonthlyContribution }},
	{"Buying: savings at retirement", "From initial savings", money, func(r calculator.Report) float64 { return r.OwnProjection.FromInitial }},
	{"Buying: savings at retirement", "From payments after payoff", money, func(r calculator.Report) float64 { return r.OwnProjection.FromAfterMortgagePayments }},
	{"Buying: savings at retirement", "From contributions", money, func(r calculator.Report) float64 { return r.OwnProjection.FromContributions }},
	{"Buying: savings at retirement", "Total savings", money, func(r calculator.Report) float64 { return r.OwnProjection.Total }},
	{"Renting: savings at retirement", "Additional monthly contribution", money, func(r calculator.Report) float64 { return r.RentProjection.AdditionalContribution }},
	{"Renting: savings at retirement", "Total monthly contribution", money, func(r calculator.Report) float64 { return r.RentProjection.TotalMonthlyContribution }},
	{"Renting: savings at retirement", "From initial savings", money, func(r calculator.Report) float64 { return r.RentProjection.FromRegularSavings }},
	{"Renting: savings at retirement", "From invested down payment", money, func(r calculator.Report) float64 { return r.RentProjection.FromWouldHaveBeenDownPayment }},
	{"Renting: savings at retirement", "From contributions", money, func(r calculator.Report) float64 { return r.RentProjection.FromContributions }},
	{"Renting: savings at retirement", "Total savings", money, func(r calculator.Report) float64 { return r.RentProjection.Total }},
	{"Comparison", "Years to retirement", years, func(r calculator.Report) float64 { return float64(r.Comparison.YearsToRetirement) }},
	{"Comparison", "Home value at retirement", money, func(r calculator.Report) float64 { return r.Comparison.ProjectedHomeValueAtRetirement }},
	{"Comparison", "Owning advantage", money, func(r calculator.Report) float64 { return r.Comparison.OwnAdvantage }},
	{"Comparison", "Mortgage paid before retirement", flag, func(r calculator.Report) float64 { return boolValue(r.Comparison.MortgagePaidBeforeRetirement) }},
}

// PrettyFormat writes a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, reports []calculator.Report) {
	p := message.NewPrinter(language.English)
	for i, report := range reports {
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", report.Name)
		_, _ = fmt.Fprintf(w, "Monthly payment (P&I): %s\n", format.WholeDollars(report.Payment.MonthlyPrincipalAndInterest))

		section := ""
		for _, m := range metrics {
			if m.section != section {
				section = m.section
				_, _ = fmt.Fprintf(w, "\n%s\n", section)
			}
			value := m.value(report)
			switch m.kind {
			case money:
				_, _ = p.Fprintf(w, "  %-34s $%.2f\n", m.label, value)
			case rate:
				_, _ = fmt.Fprintf(w, "  %-34s %s\n", m.label, format.Percent(value))
			case years:
				_, _ = p.Fprintf(w, "  %-34s %d\n", m.label, int(value))
			case flag:
				_, _ = fmt.Fprintf(w, "  %-34s %s\n", m.label, yesNo(value != 0))
			}
		}

		if len(report.Breakeven) > 0 {
			_, _ = fmt.Fprintf(w, "\nBreakeven\n")
			for _, b := range report.Breakeven {
				status := ""
				if !b.Converged {
					status = " (not converged)"
				}
				_, _ = fmt.Fprintf(w, "  %-34s %s (currently %s)%s\n", b.Field, b.ValueDisplay, b.OriginalDisplay, status)
				for _, note := range b.Notes {
					_, _ = fmt.Fprintf(w, "    %s\n", note)
				}
			}
		}

		verdict := "renting"
		if report.Comparison.PreferOwning {
			verdict = "buying"
		}
		_, _ = fmt.Fprintf(w, "\nProjected outcome favors %s by %s\n", verdict, format.Currency(math.Abs(report.Comparison.OwnAdvantage)))
		if i < len(reports)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes the reports in comma-separated value format, one row per
// metric and one column per scenario.
func CsvFormat(w io.Writer, reports []calculator.Report) {
	_, _ = io.WriteString(w, CsvString(reports))
}

// CsvString renders the reports in the same layout as CsvFormat.
func CsvString(reports []calculator.Report) string {
	var b strings.Builder
	b.WriteString(`"section","metric"`)
	for _, report := range reports {
		fmt.Fprintf(&b, `,"%s"`, csvEscape(report.Name))
	}
	b.WriteString("\n")
	for _, m := range metrics {
		fmt.Fprintf(&b, `"%s","%s"`, m.section, m.label)
		for _, report := range reports {
			value := m.value(report)
			switch m.kind {
			case years, flag:
				fmt.Fprintf(&b, `,"%d"`, int(value))
			case rate:
				fmt.Fprintf(&b, `,"%.4f"`, value)
			default:
				fmt.Fprintf(&b, `,"%.2f"`, value)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// JSONFormat writes the reports as an indented JSON array. Reports holding
// non-finite values cannot be encoded and return an error.
func JSONFormat(w io.Writer, reports []calculator.Report) error {
	if reports == nil {
		reports = []calculator.Report{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode reports as JSON: %w", err)
	}
	return nil
}

func csvEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
