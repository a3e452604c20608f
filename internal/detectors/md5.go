package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var reMD5 = regexp.MustCompile(`(?i)\bMD5\b|md5\(|hashlib\.md5|crypto/md5|md5\.New\b`)

func init() {
	register(Rule{
		Algorithm: types.AlgoMD5,
		Patterns:  []*regexp.Regexp{reMD5},
	})
}
