package id

import (
	"strings"
	"testing"
)

func TestGenerate_Length(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		expected int
	}{
		{"default length for zero", 0, DefaultLength},
		{"default length for negative", -5, DefaultLength},
		{"explicit length", 8, 8},
		{"long id", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Generate(tt.length)
			if err != nil {
				t.Fatalf("Generate returned error: %v", err)
			}
			if len(got) != tt.expected {
				t.Errorf("expected length %d, got %d", tt.expected, len(got))
			}
		})
	}
}

func TestGenerate_AlphabetOnly(t *testing.T) {
	got, err := Generate(64)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	for _, c := range got {
		if !strings.ContainsRune(alphabet, c) {
			t.Errorf("unexpected character %q in generated id", c)
		}
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := MustGenerate(DefaultLength)
		if seen[got] {
			t.Fatalf("duplicate id generated: %s", got)
		}
		seen[got] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	got, err := GenerateWithPrefix(PrefixChatSession, 12)
	if err != nil {
		t.Fatalf("GenerateWithPrefix returned error: %v", err)
	}
	if !strings.HasPrefix(got, "cs_") {
		t.Errorf("expected cs_ prefix, got %s", got)
	}
	if len(got) != len("cs_")+12 {
		t.Errorf("unexpected length %d", len(got))
	}
}

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		wantPrefix string
		wantID     string
	}{
		{"valid", "cs_xK9mP2vL3nQa", "cs", "xK9mP2vL3nQa"},
		{"no separator", "xK9mP2vL3nQa", "", ""},
		{"empty prefix", "_abc", "", ""},
		{"empty id", "cs_", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, shortID := ParsePrefix(tt.value)
			if prefix != tt.wantPrefix || shortID != tt.wantID {
				t.Errorf("ParsePrefix(%q) = (%q, %q), want (%q, %q)",
					tt.value, prefix, shortID, tt.wantPrefix, tt.wantID)
			}
		})
	}
}
