// Package report renders completed scan sessions into one of several output
// encodings. Narrative and tabular rendering stream finding by finding so
// memory stays bounded regardless of scan size.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/pqradar/pqradar/internal/risk"
	"github.com/pqradar/pqradar/internal/session"
)

// Format selects an output encoding.
type Format string

const (
	FormatNarrative  Format = "narrative"
	FormatTabular    Format = "tabular"
	FormatStructured Format = "structured"
)

// ErrUnsupportedFormat is a hard failure: the caller asked for an encoding
// the compiler does not produce.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// ParseFormat resolves a user-supplied format name, accepting the common
// aliases for each encoding.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "narrative", "md", "markdown", "text":
		return FormatNarrative, nil
	case "tabular", "csv":
		return FormatTabular, nil
	case "structured", "json":
		return FormatStructured, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Options controls optional report sections.
type Options struct {
	IncludeAIAnalysis bool
	IncludeSHAPPlots  bool
	IncludeDashboard  bool
}

// Artifact is a rendered report: content bytes plus the metadata an external
// delivery layer needs to transmit it. Artifacts are disposable and can be
// regenerated from the session at any time.
type Artifact struct {
	ScanID        string    `json:"scan_id"`
	Format        Format    `json:"format"`
	SchemaVersion string    `json:"schema_version,omitempty"`
	ContentKind   string    `json:"content_kind"`
	Filename      string    `json:"filename"`
	GeneratedAt   time.Time `json:"generated_at"`
	Content       []byte    `json:"content"`
}

// Generate renders one artifact for a completed session. A session that is
// still pending or processing yields session.ErrNotReady; a failed session is
// likewise not reportable.
func Generate(snap session.Snapshot, table *risk.Table, format Format, opts Options) (Artifact, error) {
	if !snap.Ready() {
		return Artifact{}, fmt.Errorf("%w: scan %s is %s", session.ErrNotReady, snap.ScanID, snap.Status)
	}
	var buf bytes.Buffer
	var kind, ext, schema string
	switch format {
	case FormatNarrative:
		if err := WriteNarrative(&buf, snap, table, opts); err != nil {
			return Artifact{}, err
		}
		kind, ext = "text/markdown", "md"
	case FormatTabular:
		if err := WriteTabular(&buf, snap); err != nil {
			return Artifact{}, err
		}
		kind, ext, schema = "text/csv", "csv", TabularSchemaVersion
	case FormatStructured:
		if err := WriteStructured(&buf, snap); err != nil {
			return Artifact{}, err
		}
		kind, ext, schema = "application/json", "json", StructuredSchemaVersion
	default:
		return Artifact{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return Artifact{
		ScanID:        snap.ScanID,
		Format:        format,
		SchemaVersion: schema,
		ContentKind:   kind,
		Filename:      fmt.Sprintf("pqradar_report_%s.%s", snap.ScanID, ext),
		GeneratedAt:   time.Now().UTC(),
		Content:       buf.Bytes(),
	}, nil
}
