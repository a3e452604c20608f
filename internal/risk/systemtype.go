package risk

import (
	"strings"

	"github.com/pqradar/pqradar/internal/types"
)

var systemHints = []struct {
	system types.SystemType
	hints  []string
}{
	{types.SystemAPI, []string{"gateway", "graphql", "grpc", "proxy", "/api/", "api_", "apis"}},
	{types.SystemWeb, []string{"http", "web", "server", "handler", "controller", "views", "frontend"}},
	{types.SystemDatabase, []string{"db", "database", "sql", "repository", "storage", "dao", "migrations"}},
	{types.SystemEmbedded, []string{"firmware", "embedded", "device", "iot", "sensor", "driver"}},
	{types.SystemInfrastructure, []string{"terraform", "ansible", "deploy", "infra", "k8s", "kubernetes", "docker"}},
}

// InferSystemType guesses the deployment context of a finding from its path
// and snippet. It is a pure function and falls back to SystemUnspecified,
// which only participates in the broadest correlation tiers.
func InferSystemType(path, snippet string) types.SystemType {
	haystack := strings.ToLower(path) + " " + strings.ToLower(snippet)
	for _, h := range systemHints {
		for _, hint := range h.hints {
			if strings.Contains(haystack, hint) {
				return h.system
			}
		}
	}
	return types.SystemUnspecified
}
