package detectors

import (
	"path/filepath"
	"strings"
)

// ModuleName derives a coarse module/package name from a file path. It looks
// for common layout markers (src, lib, pkg, internal, app, modules) and takes
// the following path element, falling back to the parent directory name.
func ModuleName(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	for i, part := range parts {
		switch part {
		case "src", "lib", "pkg", "internal", "app", "modules":
			if i+1 < len(parts)-1 {
				return parts[i+1]
			}
		}
	}
	if len(parts) >= 2 {
		return parts[len(parts)-2]
	}
	return "unknown"
}
