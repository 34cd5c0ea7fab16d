package results

import "strings"

// TrigramSimilarity returns a 0..1 similarity between two strings using the
// same scheme as PostgreSQL's pg_trgm: both inputs are lowercased, split on
// non-alphanumeric runs, each word padded with two leading and one trailing
// space, and the score is |shared trigrams| / |all trigrams|.
func TrigramSimilarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	shared := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			shared++
		}
	}
	union := len(ta) + len(tb) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range splitWords(s) {
		padded := "  " + word + " "
		for i := 0; i+3 <= len(padded); i++ {
			set[padded[i:i+3]] = struct{}{}
		}
	}
	return set
}

func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		alnum := r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
		return !alnum
	})
}
