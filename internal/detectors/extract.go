package detectors

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/pqradar/pqradar/internal/types"
)

const maxSnippetLen = 200

// Extract applies the full catalog to a text buffer and returns findings in
// line order. A line may yield one finding per algorithm; spans already
// claimed by an earlier rule on the same line are not re-reported. Extraction
// is pure: the same buffer always yields the same sequence.
func Extract(path string, data []byte) []types.Finding {
	var out []types.Finding
	rules := Rules()
	module := ModuleName(path)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		var claimed [][2]int
		for _, rule := range rules {
			loc := matchRule(rule, text, claimed)
			if loc == nil {
				continue
			}
			claimed = append(claimed, [2]int{loc[0], loc[1]})
			out = append(out, types.Finding{
				Path:      path,
				Line:      line,
				Algorithm: rule.Algorithm,
				KeySize:   extractKeySize(rule, text),
				Mode:      extractMode(rule, text),
				Module:    module,
				Snippet:   snippet(text),
			})
		}
	}
	return out
}

// matchRule returns the first pattern match on the line that does not overlap
// an already claimed span, or nil.
func matchRule(rule Rule, text string, claimed [][2]int) []int {
	for _, p := range rule.Patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			if !overlaps(loc[0], loc[1], claimed) {
				return loc
			}
		}
	}
	return nil
}

func overlaps(start, end int, claimed [][2]int) bool {
	for _, c := range claimed {
		if start < c[1] && c[0] < end {
			return true
		}
	}
	return false
}

func extractKeySize(rule Rule, text string) int {
	if rule.KeySize != nil {
		if m := rule.KeySize.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return rule.DefaultKeySize
}

func extractMode(rule Rule, text string) string {
	if rule.Mode == nil {
		return ""
	}
	if m := rule.Mode.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func snippet(text string) string {
	s := strings.TrimSpace(text)
	if len(s) > maxSnippetLen {
		s = s[:maxSnippetLen]
	}
	return s
}
