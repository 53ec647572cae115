package translit

import (
	"strings"
	"testing"
)

func TestUnidecode(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"áéíóú", "aeiou"},
		{"ç", "c"},
		{"ñ", "n"},
		{"œ", "oe"},
		{"Łódź", "Lodz"},
		{"über", "uber"},
		{"français", "francais"},
		{"Ελλάδα", "Ellada"},
		{"école", "ecole"},
		{"", ""},
		{"12345", "12345"},
		{"@@@###", "@@@###"},
	}
	var tr Unidecode
	for _, tt := range tests {
		got := tr.Transliterate(tt.input)
		if got != tt.want {
			t.Errorf("Unidecode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUnidecode_Han(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"中文", "zhong wen"},
		{"東京", "dong jing"},
		{"北京", "bei jing"},
	}
	var tr Unidecode
	for _, tt := range tests {
		got := strings.ToLower(strings.TrimSpace(tr.Transliterate(tt.input)))
		if got != tt.want {
			t.Errorf("Unidecode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"áéíóú", "aeiou"},
		{"ç", "c"},
		{"ñ", "n"},
		{"œ", "oe"},
		{"Łódź", "Lodz"},
		{"über", "uber"},
		{"français", "francais"},
		{"Straße", "Strasse"},
		{"ﬁn", "fin"},
		{"北京", ""},
		{"", ""},
		{"12345", "12345"},
		{"@#$%", "@#$%"},
	}
	var tr Fold
	for _, tt := range tests {
		got := tr.Transliterate(tt.input)
		if got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		mode Mode
		want Transliterator
	}{
		{ModeUnidecode, Unidecode{}},
		{"", Unidecode{}},
		{ModeFold, Fold{}},
	}
	for _, tt := range tests {
		got, err := New(tt.mode)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("New(%q) = %T, want %T", tt.mode, got, tt.want)
		}
	}

	if _, err := New("icu"); err == nil {
		t.Error("New(icu): expected error for unknown mode")
	}
}

func TestModeRich(t *testing.T) {
	if !ModeUnidecode.Rich() || !Mode("").Rich() {
		t.Error("unidecode mode should be rich")
	}
	if ModeFold.Rich() {
		t.Error("fold mode should not be rich")
	}
}
