package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var reSHA1 = regexp.MustCompile(`(?i)\bSHA-?1\b|sha1\(|hashlib\.sha1|crypto/sha1|sha1\.New\b`)

func init() {
	register(Rule{
		Algorithm: types.AlgoSHA1,
		Patterns:  []*regexp.Regexp{reSHA1},
	})
}
