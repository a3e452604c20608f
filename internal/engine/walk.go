package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// walk traverses the materialized tree under cfg.Root and invokes handle for
// each candidate source file, and skip for files passed over at walk
// granularity. Oversized files never abort the walk. The context is checked
// between directory entries so cancellation takes effect promptly.
func walk(ctx context.Context, cfg Config, handle func(rel string) error, skip func(rel, reason string)) error {
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == cfg.Root {
				return err
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !isSupportedExtension(strings.ToLower(filepath.Ext(rel))) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil {
			skip(rel, "unreadable")
			return nil
		}
		if cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
			skip(rel, "oversized")
			return nil
		}
		return handle(rel)
	})
}

// looksBinary sniffs a NUL byte in the first 800 bytes.
func looksBinary(b []byte) bool {
	n := 800
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// allowedByGlobs applies comma-separated include then exclude doublestar
// globs with forward-slash semantics. Includes, when present, act as a
// positive filter; excludes are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}
