package breakeven

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// TableFormatter formats breakeven results as a console table
type TableFormatter struct {
	ShowPoints bool
}

// Format generates a formatted table for a breakeven result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("REGIME SWITCH POINT (RECIBOS VERDES vs UNIPESSOAL)\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Gross Income:        €%s\n", tf.formatCurrency(result.GrossIncome)))
	sb.WriteString(fmt.Sprintf("Expenses Swept:      €0 - €%s (step €%s)\n",
		tf.formatCurrency(result.MaxExpense), tf.formatCurrency(result.Step)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Found)))
	if result.Found {
		sb.WriteString(fmt.Sprintf("Breakeven Expenses:  €%s\n", tf.formatCurrency(result.Expense)))
	}
	sb.WriteString("\n")

	if len(result.Points) > 0 {
		lead := "Recibos Verdes"
		if result.CompanyBetterAtZero {
			lead = "Unipessoal"
		}
		sb.WriteString(fmt.Sprintf("At zero expenses %s pays more.\n\n", lead))
	}

	if tf.ShowPoints && len(result.Points) > 0 {
		sb.WriteString("SWEEP\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("%12s %18s %18s %14s\n", "Expenses", "Recibos Verdes", "Unipessoal", "Difference"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, p := range result.Points {
			marker := ""
			if result.Found && p.Expense.Equal(result.Expense) {
				marker = "  <-"
			}
			sb.WriteString(fmt.Sprintf("%12s %18s %18s %14s%s\n",
				tf.formatCurrency(p.Expense),
				tf.formatCurrency(p.ContractorNet),
				tf.formatCurrency(p.CompanyNet),
				tf.deltaSymbol(p.Difference)+tf.formatCurrency(p.Difference),
				marker))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatCurve formats breakeven results across daily rates
func (tf *TableFormatter) FormatCurve(points []CurvePoint) string {
	var sb strings.Builder

	sb.WriteString("BREAKEVEN BY DAILY RATE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%10s %14s %18s %20s\n", "Rate", "Gross", "Breakeven", "Better at €0"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, p := range points {
		be := "-"
		if p.Result.Found {
			be = "€" + tf.formatCurrency(p.Result.Expense)
		}
		lead := "Recibos Verdes"
		if p.Result.CompanyBetterAtZero {
			lead = "Unipessoal"
		}
		sb.WriteString(fmt.Sprintf("%10s %14s %18s %20s\n",
			"€"+p.DailyRate.StringFixed(0),
			"€"+tf.formatShort(p.Result.GrossIncome),
			be,
			lead))
	}
	sb.WriteString("\n")
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatCurve formats curve results as JSON
func (jf *JSONFormatter) FormatCurve(points []CurvePoint) (string, error) {
	return jf.marshal(points)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// CSVFormatter writes the sweep samples as CSV rows
type CSVFormatter struct{}

// Format generates CSV output of the sweep
func (CSVFormatter) Format(result *Result) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"expense", "contractor_net", "company_net", "difference"}); err != nil {
		return "", err
	}
	for _, p := range result.Points {
		row := []string{
			p.Expense.StringFixed(2),
			p.ContractorNet.StringFixed(2),
			p.CompanyNet.StringFixed(2),
			p.Difference.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// Helper methods

func (tf *TableFormatter) formatStatus(found bool) string {
	if found {
		return "✓ Switch point found"
	}
	return "⚠ No switch point in range"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}
