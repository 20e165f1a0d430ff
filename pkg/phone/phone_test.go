package phone

import "testing"

func TestValid(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"55512345", true},
		{"00000000", true},
		{"1234567", false},
		{"123456789", false},
		{"5551234a", false},
		{"5551 234", false},
		{"", false},
		{"٥٥٥١٢٣٤٥", false},
	}
	for _, tc := range cases {
		if got := Valid(tc.value); got != tc.want {
			t.Fatalf("Valid(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
