package engine

// Source extensions eligible for extraction. Everything else is outside the
// catalog's reach and silently skipped at walk time.
var supportedExtensions = map[string]bool{
	".py": true, ".java": true, ".js": true, ".ts": true,
	".cpp": true, ".c": true, ".h": true, ".hpp": true,
	".cs": true, ".go": true, ".rs": true, ".rb": true,
	".php": true, ".swift": true, ".kt": true, ".scala": true,
}

var defaultExcludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"__pycache__":  true,
	".venv":        true,
	".idea":        true,
	".vscode":      true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludedDirs[name]
}

func isSupportedExtension(ext string) bool {
	return supportedExtensions[ext]
}
