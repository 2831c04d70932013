package compare

import (
	"context"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/ptregime/internal/calculation"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func comparedSet(t *testing.T) *ComparisonSet {
	t.Helper()
	ce := NewCompareEngine(calculation.NewCalculationEngine2025())
	set, err := ce.Compare(context.Background(), scenarioInput(), CompareOptions{Source: "defaults"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return set
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(comparedSet(t))

	for _, want := range []string{
		"REGIME COMPARISON",
		"Base: Recibos Verdes",
		"Source: defaults",
		"Recibos Verdes (base)",
		"€50841.00",
		"COMPARISON TO BASE",
		"Winner: Recibos Verdes",
		"RECOMMENDATIONS",
	} {
		if !contains(result, want) {
			t.Errorf("Expected %q in output", want)
		}
	}

	// ranked order: contractor, company, employee
	rv := strings.Index(result, "Recibos Verdes (base)")
	uni := strings.Index(result, "Unipessoal")
	emp := strings.Index(result, "Employee")
	if !(rv < uni && uni < emp) {
		t.Errorf("Expected rows in rank order, got offsets %d %d %d", rv, uni, emp)
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	set := comparedSet(t)
	set.AlternativeResults = nil
	set.Recommendations = nil

	result := formatter.Format(set)

	if !contains(result, "Recibos Verdes") {
		t.Error("Expected base row in table")
	}
	if contains(result, "COMPARISON TO BASE") {
		t.Error("Should not have a delta section without alternatives")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.FormatCompact(comparedSet(t))

	if !contains(result, "Base: Recibos Verdes | ") {
		t.Errorf("Unexpected compact output %q", result)
	}
	if !contains(result, "Unipessoal: -€3.4K") {
		t.Errorf("Expected abbreviated company delta in %q", result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(comparedSet(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(result), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Name,Type,Regime,Rank") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "Recibos Verdes,base,contractor,1,80850.00,12111.33") {
		t.Errorf("Unexpected base row %q", lines[1])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	set := comparedSet(t)

	for _, pretty := range []bool{false, true} {
		formatter := &JSONFormatter{Pretty: pretty}
		result, err := formatter.Format(set)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["winner"] != "Recibos Verdes" {
			t.Errorf("Expected winner in JSON, got %v", decoded["winner"])
		}
		if ranked, ok := decoded["ranked"].([]any); !ok || len(ranked) != 3 {
			t.Errorf("Expected 3 ranked results, got %v", decoded["ranked"])
		}
		if pretty && !contains(result, "\n  ") {
			t.Error("Expected indented output")
		}
	}
}
