package report

import (
	"encoding/json"
	"io"

	"github.com/pqradar/pqradar/internal/session"
)

// structuredDoc wraps a session snapshot with the schema version so consumers
// can detect contract changes.
type structuredDoc struct {
	SchemaVersion string           `json:"schema_version"`
	Session       session.Snapshot `json:"session"`
}

// StructuredSchemaVersion tags the structured JSON contract.
const StructuredSchemaVersion = "1"

// WriteStructured losslessly serializes the full session and aggregate graph.
func WriteStructured(w io.Writer, snap session.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(structuredDoc{SchemaVersion: StructuredSchemaVersion, Session: snap})
}

// ParseStructured reconstructs a session snapshot from a structured report,
// the inverse of WriteStructured.
func ParseStructured(r io.Reader) (session.Snapshot, error) {
	var doc structuredDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return session.Snapshot{}, err
	}
	return doc.Session, nil
}
