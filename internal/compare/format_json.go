package compare

import (
	json "github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// jsonComparison adds the ranked view next to the set's own fields
type jsonComparison struct {
	*ComparisonSet
	Ranked []ComparisonResult `json:"ranked"`
}

// Format generates JSON output for comparison results. Besides the base and
// alternatives, "ranked" lists every result from highest net income down.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonComparison{ComparisonSet: compSet, Ranked: compSet.Ranked()}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
