package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var (
	reDSA    = regexp.MustCompile(`\bDSA\b|DSA(?:Private|Public)Key`)
	reDSAGen = regexp.MustCompile(`(?i)dsa\.generate_parameters|dsa\.GenerateParameters`)

	reDSAKeySize = regexp.MustCompile(`(?i)(?:dsa-?|key_size\s*=\s*|bits\s*=\s*)(\d{3,4})`)
)

func init() {
	register(Rule{
		Algorithm:      types.AlgoDSA,
		Patterns:       []*regexp.Regexp{reDSAGen, reDSA},
		KeySize:        reDSAKeySize,
		DefaultKeySize: 1024,
	})
}
