package risk

import (
	"sort"

	"github.com/pqradar/pqradar/internal/types"
)

// Match maps one finding to the single best table record. Precedence:
// exact (algorithm, key size, system type), then exact (algorithm, key size),
// then nearest key size for the algorithm with ties broken toward the larger
// size, then algorithm-only when the finding carries no key size. Absence of
// a match degrades to MatchNone; Match never fails.
//
// An unspecified system type only participates in the tiers that ignore
// system type.
func (t *Table) Match(f types.Finding) (*types.RiskRecord, types.MatchConfidence) {
	system := InferSystemType(f.Path, f.Snippet)

	if f.KeySize > 0 {
		if system != types.SystemUnspecified {
			if r, ok := t.byExact[exactKey{f.Algorithm, f.KeySize, system}]; ok {
				return r, types.MatchExact
			}
		}
		if r, ok := t.byPair[pairKey{f.Algorithm, f.KeySize}]; ok {
			return r, types.MatchExact
		}
		if bits, ok := t.nearestKeySize(f.Algorithm, f.KeySize); ok {
			return t.byPair[pairKey{f.Algorithm, bits}], types.MatchKeySizeRelaxed
		}
		return nil, types.MatchNone
	}

	// No key size captured: hash primitives and patterns with no size hint.
	if r, ok := t.byPair[pairKey{f.Algorithm, 0}]; ok {
		return r, types.MatchExact
	}
	if r := t.mostSevere(f.Algorithm); r != nil {
		return r, types.MatchAlgorithmOnly
	}
	return nil, types.MatchNone
}

// Enrich correlates a batch of findings. Output order mirrors input order.
func (t *Table) Enrich(findings []types.Finding) []types.EnrichedFinding {
	out := make([]types.EnrichedFinding, 0, len(findings))
	for _, f := range findings {
		r, conf := t.Match(f)
		out = append(out, types.EnrichedFinding{Finding: f, Record: r, Confidence: conf})
	}
	return out
}

// nearestKeySize picks the table key size with the minimum absolute distance
// from bits. On a tie the larger, more conservative size wins.
func (t *Table) nearestKeySize(algo types.Algorithm, bits int) (int, bool) {
	sizes := t.sizes[algo]
	if len(sizes) == 0 {
		return 0, false
	}
	i := sort.SearchInts(sizes, bits)
	if i == len(sizes) {
		return sizes[len(sizes)-1], true
	}
	if i == 0 {
		return sizes[0], true
	}
	lower, upper := sizes[i-1], sizes[i]
	if bits-lower < upper-bits {
		return lower, true
	}
	return upper, true
}

// mostSevere returns the algorithm's highest-scoring record, or nil.
func (t *Table) mostSevere(algo types.Algorithm) *types.RiskRecord {
	var best *types.RiskRecord
	for _, r := range t.byAlgo[algo] {
		if best == nil || r.Assessment.RiskScore > best.Assessment.RiskScore {
			best = r
		}
	}
	return best
}
