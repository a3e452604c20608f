package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var (
	reDHName = regexp.MustCompile(`(?i)\bDiffie[\s\-]?Hellman\b|\bDHE\b|\bDHParameters\b`)
	reDHGen  = regexp.MustCompile(`(?i)dh\.generate_parameters`)

	reDHKeySize = regexp.MustCompile(`(?i)(?:dh-?|key_size\s*=\s*|bits\s*=\s*)(\d{3,4})`)
)

func init() {
	register(Rule{
		Algorithm:      types.AlgoDH,
		Patterns:       []*regexp.Regexp{reDHGen, reDHName},
		KeySize:        reDHKeySize,
		DefaultKeySize: 2048,
	})
}
