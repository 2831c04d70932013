package output

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter writes the whole report as indented JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
