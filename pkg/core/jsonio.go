package core

import (
	"encoding/json"
	"io"
)

// MarshalFindings pretty-prints enriched findings as JSON for humans or
// pipelines.
func MarshalFindings(w io.Writer, findings []EnrichedFinding) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes findings JSON, useful for ingestion tests.
func UnmarshalFindings(r io.Reader) ([]EnrichedFinding, error) {
	var fs []EnrichedFinding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
