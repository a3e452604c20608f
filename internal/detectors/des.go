package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var (
	reDES    = regexp.MustCompile(`(?i)\b(?:3DES|Triple[\s\-]?DES|DES-EDE3?)\b|\bDES\b`)
	reDESLib = regexp.MustCompile(`(?i)des\.NewCipher|des\.NewTripleDESCipher|Crypto\.Cipher\.DES`)
)

func init() {
	register(Rule{
		Algorithm: types.AlgoDES,
		Patterns:  []*regexp.Regexp{reDESLib, reDES},
		Mode:      reCipherMode,
	})
}
