package tickets

import "testing"

func TestSplitMatchName(t *testing.T) {
	tests := []struct {
		in         string
		home, away string
		ok         bool
	}{
		{in: "Real Madrid vs Barcelona", home: "Real Madrid", away: "Barcelona", ok: true},
		{in: "Real Madrid VS Barcelona", home: "Real Madrid", away: "Barcelona", ok: true},
		{in: "Arsenal vs. Chelsea", home: "Arsenal", away: "Chelsea", ok: true},
		{in: "Lyon - Nice", home: "Lyon", away: "Nice", ok: true},
		{in: "Nadal v Federer", home: "Nadal", away: "Federer", ok: true},
		{in: "Paris Saint-Germain - Marseille", home: "Paris Saint-Germain", away: "Marseille", ok: true},
		{in: "Over 2.5 goals", ok: false},
		{in: "vs Barcelona", ok: false},
		{in: "", ok: false},
	}

	for _, tt := range tests {
		home, away, ok := SplitMatchName(tt.in)
		if ok != tt.ok {
			t.Fatalf("SplitMatchName(%q) ok=%t, want %t", tt.in, ok, tt.ok)
		}
		if !ok {
			continue
		}
		if home != tt.home || away != tt.away {
			t.Fatalf("SplitMatchName(%q) = %q, %q; want %q, %q",
				tt.in, home, away, tt.home, tt.away)
		}
	}
}
