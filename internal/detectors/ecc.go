package detectors

import (
	"regexp"

	"github.com/pqradar/pqradar/internal/types"
)

var (
	reECDSA   = regexp.MustCompile(`(?i)\bECDSA\b|\bECDH\b`)
	reECCurve = regexp.MustCompile(`(?i)secp\d{3}[rk]1\b|prime256v1\b|\bP-(?:256|384|521)\b`)
	reECWords = regexp.MustCompile(`(?i)elliptic[\s\-]?curve`)
	reECGen   = regexp.MustCompile(`(?i)ec\.generate_private_key|ecdsa\.GenerateKey`)

	reECCKeySize = regexp.MustCompile(`(?i)(?:secp|P-)(\d{3})`)
)

func init() {
	register(Rule{
		Algorithm:      types.AlgoECC,
		Patterns:       []*regexp.Regexp{reECCurve, reECDSA, reECGen, reECWords},
		KeySize:        reECCKeySize,
		DefaultKeySize: 256,
	})
}
