package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := map[string]struct {
		s    string
		def  int
		want int
	}{
		"empty uses default":    {"", 10, 10},
		"plain int":             {"42", 0, 42},
		"negative int":          {"-13", 1, -13},
		"leading zeros":         {"0012", 99, 12},
		"garbage uses default":  {"x", 5, 5},
		"untrimmed is invalid":  {" 42", 7, 7},
		"overflow uses default": {"999999999999999999999999", -1, -1},
	}
	for name, tc := range cases {
		if got := AtoiDefault(tc.s, tc.def); got != tc.want {
			t.Fatalf("%s: AtoiDefault(%q, %d) = %d; want %d", name, tc.s, tc.def, got, tc.want)
		}
	}
}

func TestClampNonNegative(t *testing.T) {
	for in, want := range map[int]int{-5: 0, -1: 0, 0: 0, 1: 1, 250: 250} {
		if got := ClampNonNegative(in); got != want {
			t.Fatalf("ClampNonNegative(%d) = %d; want %d", in, got, want)
		}
	}
}
