package lib

import "testing"

func TestHighbit64(t *testing.T) {
	cases := []struct {
		in  uint64
		out int
	}{
		{0, -1},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{1023, 9},
		{1024, 10},
		{1 << 40, 40},
	}
	for _, c := range cases {
		if x := Bit64(c.in).Highbit(); x != c.out {
			t.Errorf("Highbit(%v) expected %v, got %v", c.in, c.out, x)
		}
	}
}
