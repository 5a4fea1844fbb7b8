package reward

import "testing"

func TestTier(t *testing.T) {
	tests := []struct {
		score int
		want  int64
	}{
		{0, 0},
		{19, 0},
		{20, 500},
		{39, 500},
		{40, 1000},
		{59, 1000},
		{60, 1500},
		{80, 2000},
		{100, 3000},
		{119, 3000},
		{120, 6000},
		{1000, 6000},
		{-5, 0},
	}

	for _, tt := range tests {
		if got := Tier(tt.score); got != tt.want {
			t.Errorf("Tier(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}
