package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    func(d decimal.Decimal) string { return FormatPercentage(d.Mul(hundred)) },
	"rawpct": FormatPercentage,
	"lower":  strings.ToLower,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	best, _ := r.Best()
	data := struct {
		*Report
		Best string
	}{r, best.Regime.DisplayName()}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
