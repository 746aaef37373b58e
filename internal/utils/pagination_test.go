package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"-7", 0, -7},
		{"", 10, 10},
		{"x", 5, 5},
		{"4.5", 3, 3},
		{" 42", 1, 1},
	}
	for _, tc := range tests {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Fatalf("AtoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}
