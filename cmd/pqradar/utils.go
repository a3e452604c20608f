package pqradar

import (
	"path/filepath"
	"time"

	"github.com/pqradar/pqradar/internal/config"
	"github.com/pqradar/pqradar/internal/risk"
)

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

// loadConfigs resolves global and local on-disk config for the given root.
// Missing files yield zero-value configs.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	return local, global
}

// resolveFormatName picks the report format: an explicit CLI flag wins, then
// local and global config, then the flag's default value.
func resolveFormatName(flagChanged bool, cli string, local, global config.FileConfig) string {
	if flagChanged {
		return cli
	}
	if v := pickString("", local.Format, global.Format); v != "" {
		return v
	}
	return cli
}

// resolveTableDir applies CLI > local > global precedence, defaulting to the
// conventional "model" directory next to the working tree.
func resolveTableDir(local, global config.FileConfig) string {
	if dir := pickString(flagTableDir, local.TableDir, global.TableDir); dir != "" {
		return dir
	}
	return "model"
}

func loadTable(local, global config.FileConfig) (*risk.Table, error) {
	dir := resolveTableDir(local, global)
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return risk.LoadDir(abs)
}

// parseTimeout resolves a duration with CLI > local > global precedence; a
// malformed config value is ignored rather than fatal.
func parseTimeout(cli time.Duration, local, global *string) time.Duration {
	if cli > 0 {
		return cli
	}
	for _, s := range []*string{local, global} {
		if s == nil {
			continue
		}
		if d, err := time.ParseDuration(*s); err == nil {
			return d
		}
	}
	return 0
}
