package override

import (
	"fmt"
	"strings"

	"github.com/visakit/visarepr/pkg/condition"
	"github.com/visakit/visarepr/pkg/repr"
)

// splitSegments splits an override value on commas that sit outside
// quoted strings and outside parentheses, so conditions like
// all(a, b) survive intact.
func splitSegments(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty override value")
	}

	var segments []string
	var depth int
	var inQuote bool
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '"':
			inQuote = !inQuote
		case '(':
			if !inQuote {
				depth++
			}
		case ')':
			if !inQuote {
				depth--
				if depth < 0 {
					return nil, fmt.Errorf("unbalanced parenthesis at offset %d", i)
				}
			}
		case ',':
			if !inQuote && depth == 0 {
				segments = append(segments, raw[start:i])
				start = i + 1
			}
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated string literal")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parenthesis")
	}
	segments = append(segments, raw[start:])

	for i, seg := range segments {
		if strings.TrimSpace(seg) == "" {
			return nil, fmt.Errorf("empty segment at position %d", i+1)
		}
	}
	return segments, nil
}

// parseSegment parses one segment: either "condition:representation",
// split on the first colon outside a quoted string, or a bare
// representation acting as the unconditional catch-all.
func parseSegment(seg string) (Entry, error) {
	colon := -1
	inQuote := false
	for i := 0; i < len(seg); i++ {
		switch seg[i] {
		case '"':
			inQuote = !inQuote
		case ':':
			if !inQuote {
				colon = i
			}
		}
		if colon >= 0 {
			break
		}
	}

	if colon < 0 {
		rep, err := repr.ParseRepresentation(strings.TrimSpace(seg))
		if err != nil {
			return Entry{}, err
		}
		return Entry{Repr: rep}, nil
	}

	condStr := strings.TrimSpace(seg[:colon])
	repStr := strings.TrimSpace(seg[colon+1:])
	if condStr == "" {
		return Entry{}, fmt.Errorf("segment has no condition before the colon")
	}

	cond, err := condition.Parse(condStr)
	if err != nil {
		return Entry{}, err
	}
	rep, err := repr.ParseRepresentation(repStr)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Cond: cond, Repr: rep}, nil
}
