package results

import "testing"

func TestTrigramSimilarityIdentical(t *testing.T) {
	if got := TrigramSimilarity("Real Madrid", "real madrid"); got != 1.0 {
		t.Fatalf("identical names after normalization should score 1.0, got %f", got)
	}
}

func TestTrigramSimilarityDisjoint(t *testing.T) {
	if got := TrigramSimilarity("Arsenal", "Chelsea"); got >= MatchThreshold {
		t.Fatalf("unrelated names should stay below %v, got %f", MatchThreshold, got)
	}
	if got := TrigramSimilarity("", "Chelsea"); got != 0 {
		t.Fatalf("empty input should score 0, got %f", got)
	}
}

func TestTrigramSimilarityCloseVariants(t *testing.T) {
	tests := []struct {
		a, b  string
		above bool
	}{
		{a: "Bayern Munchen", b: "Bayern München", above: true},
		{a: "Borussia Dortmund", b: "Borussia Dortmund II", above: true},
		{a: "Man United", b: "Manchester United", above: false},
	}

	for _, tt := range tests {
		got := TrigramSimilarity(tt.a, tt.b)
		if (got > MatchThreshold) != tt.above {
			t.Fatalf("TrigramSimilarity(%q, %q) = %f, want above-threshold=%t",
				tt.a, tt.b, got, tt.above)
		}
	}
}

func TestTrigramSimilaritySymmetric(t *testing.T) {
	a, b := "Borussia Dortmund", "Dortmund"
	if TrigramSimilarity(a, b) != TrigramSimilarity(b, a) {
		t.Fatalf("similarity must be symmetric")
	}
}
