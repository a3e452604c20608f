package pqradar

import (
	"testing"
	"time"

	"github.com/pqradar/pqradar/internal/config"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestPickPrecedence(t *testing.T) {
	if got := pickString("cli", strp("local"), strp("global")); got != "cli" {
		t.Fatalf("cli should win, got %q", got)
	}
	if got := pickString("", strp("local"), strp("global")); got != "local" {
		t.Fatalf("local should win, got %q", got)
	}
	if got := pickString("", nil, strp("global")); got != "global" {
		t.Fatalf("global should win, got %q", got)
	}
	if got := pickString("", nil, nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := pickInt(0, intp(4), nil); got != 4 {
		t.Fatalf("expected 4, got %d", got)
	}
	if got := pickInt64(16, nil, nil); got != 16 {
		t.Fatalf("expected 16, got %d", got)
	}
}

func TestResolveTableDirDefault(t *testing.T) {
	old := flagTableDir
	defer func() { flagTableDir = old }()

	flagTableDir = ""
	if got := resolveTableDir(config.FileConfig{}, config.FileConfig{}); got != "model" {
		t.Fatalf("expected default model dir, got %q", got)
	}
	if got := resolveTableDir(config.FileConfig{TableDir: strp("data")}, config.FileConfig{}); got != "data" {
		t.Fatalf("expected local dir, got %q", got)
	}
	flagTableDir = "/opt/tables"
	if got := resolveTableDir(config.FileConfig{TableDir: strp("data")}, config.FileConfig{}); got != "/opt/tables" {
		t.Fatalf("expected flag dir, got %q", got)
	}
}

func TestResolveFormatName(t *testing.T) {
	if got := resolveFormatName(true, "csv", config.FileConfig{Format: strp("json")}, config.FileConfig{}); got != "csv" {
		t.Fatalf("explicit flag should win, got %q", got)
	}
	if got := resolveFormatName(false, "narrative", config.FileConfig{Format: strp("json")}, config.FileConfig{}); got != "json" {
		t.Fatalf("local config should override the default, got %q", got)
	}
	if got := resolveFormatName(false, "narrative", config.FileConfig{}, config.FileConfig{Format: strp("csv")}); got != "csv" {
		t.Fatalf("global config should override the default, got %q", got)
	}
	if got := resolveFormatName(false, "narrative", config.FileConfig{}, config.FileConfig{}); got != "narrative" {
		t.Fatalf("expected default, got %q", got)
	}
}

func TestParseTimeout(t *testing.T) {
	if got := parseTimeout(5*time.Second, strp("10s"), nil); got != 5*time.Second {
		t.Fatalf("cli should win, got %v", got)
	}
	if got := parseTimeout(0, strp("10s"), strp("20s")); got != 10*time.Second {
		t.Fatalf("local should win, got %v", got)
	}
	if got := parseTimeout(0, strp("garbage"), strp("20s")); got != 20*time.Second {
		t.Fatalf("malformed local should fall through, got %v", got)
	}
	if got := parseTimeout(0, nil, nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
