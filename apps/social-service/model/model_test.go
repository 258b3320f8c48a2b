package model

import "testing"

// TestCanonicalPair 无序对规范化：小ID在前，与参数顺序无关
func TestCanonicalPair(t *testing.T) {
	cases := []struct {
		a, b     int64
		min, max int64
	}{
		{1, 2, 1, 2},
		{2, 1, 1, 2},
		{7, 7, 7, 7},
		{100, 3, 3, 100},
	}

	for _, c := range cases {
		gotMin, gotMax := CanonicalPair(c.a, c.b)
		if gotMin != c.min || gotMax != c.max {
			t.Errorf("CanonicalPair(%d, %d) = (%d, %d), want (%d, %d)", c.a, c.b, gotMin, gotMax, c.min, c.max)
		}
	}
}
