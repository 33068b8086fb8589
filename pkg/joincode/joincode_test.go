package joincode

import (
	"strings"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	t.Parallel()
	for i := 0; i < 100; i++ {
		code := Generate()
		if len(code) != Length {
			t.Fatalf("code %q: got length %d, want %d", code, len(code), Length)
		}
		for _, ch := range code {
			if !strings.ContainsRune(alphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
	}
}

func TestGenerateVaries(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[Generate()] = true
	}
	// 36^6 codes; 50 draws colliding down to a handful would mean the
	// generator is broken.
	if len(seen) < 45 {
		t.Errorf("50 draws produced only %d distinct codes", len(seen))
	}
}

func TestMatchesCaseInsensitive(t *testing.T) {
	t.Parallel()
	if !Matches("abc123", "ABC123") {
		t.Error("Matches rejected an uppercase presentation")
	}
	if !Matches("abc123", "  abc123  ") {
		t.Error("Matches rejected surrounding whitespace")
	}
	if Matches("abc123", "abc124") {
		t.Error("Matches accepted a different code")
	}
}

func TestValid(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want bool
	}{
		{"abc123", true},
		{"000000", true},
		{"abc12", false},
		{"abc1234", false},
		{"ABC123", false},
		{"abc?12", false},
	}
	for _, c := range cases {
		if got := Valid(c.in); got != c.want {
			t.Errorf("Valid(%q): got %v, want %v", c.in, got, c.want)
		}
	}
}
