package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

// AES is not quantum-broken the way RSA/ECC are, but Grover's algorithm
// halves its effective strength, so AES-128 usage is still worth surfacing.
var (
	reAES    = regexp.MustCompile(`(?i)\bAES(?:-\d{3})?\b|Advanced\s+Encryption\s+Standard`)
	reAESLib = regexp.MustCompile(`(?i)Crypto\.Cipher\.AES|aes\.NewCipher`)

	reAESKeySize = regexp.MustCompile(`(?i)AES[-_]?(\d{3})`)
	reCipherMode = regexp.MustCompile(`\b(CBC|ECB|CFB|OFB|CTR|GCM)\b`)
)

func init() {
	register(Rule{
		Algorithm:      types.AlgoAES,
		Patterns:       []*regexp.Regexp{reAESLib, reAES},
		KeySize:        reAESKeySize,
		Mode:           reCipherMode,
		DefaultKeySize: 128,
	})
}
