package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var (
	reRSA        = regexp.MustCompile(`(?i)\bRSA(?:_PKCS1)?\b`)
	reRSASized   = regexp.MustCompile(`(?i)\bRSA-(\d{3,4})\b`)
	reRSAKeyType = regexp.MustCompile(`RSA(?:Private|Public)Key`)
	reRSAGen     = regexp.MustCompile(`(?i)rsa\.generate_private_key|RSA\.generate|rsa\.GenerateKey|Crypto\.PublicKey\.RSA`)

	reRSAKeySize = regexp.MustCompile(`(?i)(?:rsa-?|key_size\s*=\s*|bits\s*=\s*|\.generate\(\s*|GenerateKey\([^,)]*,\s*)(\d{3,4})`)
)

func init() {
	register(Rule{
		Algorithm:      types.AlgoRSA,
		Patterns:       []*regexp.Regexp{reRSASized, reRSAGen, reRSAKeyType, reRSA},
		KeySize:        reRSAKeySize,
		DefaultKeySize: 2048,
	})
}
