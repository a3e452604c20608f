package detectors

import (
	"regexp"
	"sort"

	"github.com/pqradar/pqradar/internal/types"
)

// Rule binds an algorithm identifier to its detection patterns. Patterns are
// tried in order and the first hit on a line claims the matched span. KeySize
// and Mode are optional capture regexes applied to the whole line; group 1 of
// KeySize must be the size in bits.
type Rule struct {
	Algorithm      types.Algorithm
	Patterns       []*regexp.Regexp
	KeySize        *regexp.Regexp
	Mode           *regexp.Regexp
	DefaultKeySize int
}

var registry []Rule

func register(r Rule) {
	registry = append(registry, r)
}

// Rules returns the catalog sorted by algorithm name so extraction order is
// independent of package init order.
func Rules() []Rule {
	out := make([]Rule, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Algorithm < out[j].Algorithm })
	return out
}

// Algorithms lists the algorithm IDs the catalog can detect.
func Algorithms() []types.Algorithm {
	rules := Rules()
	out := make([]types.Algorithm, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.Algorithm)
	}
	return out
}
