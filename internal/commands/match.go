package commands

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxRelativeDistance is the largest edit distance, as a fraction of the
// longer string, still accepted as a typo.
const maxRelativeDistance = 0.4

// MatchError reports a name that resolved to nothing or to several candidates.
type MatchError struct {
	Kind        string
	Query       string
	Ambiguous   bool
	Suggestions []string
}

func (e *MatchError) Error() string {
	switch {
	case e.Ambiguous:
		return fmt.Sprintf("%s %q is ambiguous, did you mean one of: %s", e.Kind, e.Query, strings.Join(e.Suggestions, ", "))
	case len(e.Suggestions) > 0:
		return fmt.Sprintf("no %s matches %q, did you mean: %s", e.Kind, e.Query, strings.Join(e.Suggestions, ", "))
	default:
		return fmt.Sprintf("no %s matches %q", e.Kind, e.Query)
	}
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// resolveName picks the candidate closest to query by Levenshtein distance
// on normalized names. Ties at the best distance are ambiguous. labels, when
// non-nil, name the candidates in suggestions.
func resolveName(kind, query string, candidates, labels []string) (int, error) {
	if labels == nil {
		labels = candidates
	}
	q := normalizeName(query)
	if q == "" {
		return -1, fmt.Errorf("%s is required", kind)
	}

	type scored struct {
		index    int
		distance int
	}
	scores := make([]scored, len(candidates))
	for i, c := range candidates {
		scores[i] = scored{index: i, distance: levenshtein.ComputeDistance(q, normalizeName(c))}
	}
	sort.SliceStable(scores, func(a, b int) bool { return scores[a].distance < scores[b].distance })

	if len(scores) == 0 {
		return -1, &MatchError{Kind: kind, Query: query}
	}

	best := scores[0]
	var tied []string
	for _, s := range scores {
		if s.distance != best.distance {
			break
		}
		tied = append(tied, labels[s.index])
	}
	if len(tied) > 1 {
		return -1, &MatchError{Kind: kind, Query: query, Ambiguous: true, Suggestions: tied}
	}

	if relativeDistance(best.distance, q, normalizeName(candidates[best.index])) > maxRelativeDistance {
		var suggestions []string
		for _, s := range scores[:min(3, len(scores))] {
			suggestions = append(suggestions, labels[s.index])
		}
		return -1, &MatchError{Kind: kind, Query: query, Suggestions: suggestions}
	}
	return best.index, nil
}

func relativeDistance(d int, a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0
	}
	return float64(d) / float64(longest)
}
