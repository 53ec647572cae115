package similarity

import (
	"errors"
	"strings"
	"testing"

	"github.com/LeandroLuccerini/similarity/pkg/normalize"
	"github.com/LeandroLuccerini/similarity/pkg/translit"
)

type pairCase struct {
	a, b string
	want float64
}

func newFuzzy(t *testing.T, mode translit.Mode) *Fuzzy {
	t.Helper()
	n, err := normalize.NewStringNormalizer(mode)
	if err != nil {
		t.Fatalf("NewStringNormalizer(%q): %v", mode, err)
	}
	return NewFuzzy(n)
}

func runPairCases(t *testing.T, sim Similarity, cases []pairCase) {
	t.Helper()
	for _, tt := range cases {
		got, err := sim.Similarity(tt.a, tt.b)
		if err != nil {
			t.Errorf("Similarity(%q, %q): %v", tt.a, tt.b, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		rev, _ := sim.Similarity(tt.b, tt.a)
		if rev != got {
			t.Errorf("Similarity(%q, %q) = %v, not symmetric with %v", tt.b, tt.a, rev, got)
		}
	}
}

func TestFuzzy(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeUnidecode), []pairCase{
		{"Test", "Test", 1},
		{"Test ", " test", 1},
		{"H e l l o!", "hello", 1},
		{"ciao, mondo!", "Ciao mondo", 1},
		{"house", "mouse", 0.8},
		{"color", "colour", 0.833},
		{"kitten", "sitting", 0.571},
		{"a", "a", 1},
		{"a", "b", 0},
		{"ab", "ac", 0.5},
		{"café", "cafe", 1},
		{"résumé", "resume", 1},
		{"HELLO", "hello", 1},
		{"A.B,C;D!", "ABCD", 1},
		{"A B-C_D", "abcd", 1},
		{"ñandú", "nandu", 1},
		{"Gödel", "Godel", 1},
		{"apple", "pear", 0.2},
		{"abc", "xyz", 0},
	})
}

func TestFuzzy_ShortStrings(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeUnidecode), []pairCase{
		{"ab", "ba", 0.5},
		{"a", "ab", 0.667},
		{"x", "yz", 0},
		{"é", "e", 1},
	})
}

func TestFuzzy_Spanish(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeUnidecode), []pairCase{
		{"niño", "nino", 1},
		{"corazón", "corazon", 1},
		{"Canción", "cancion", 1},
		{"mañana", "manana", 1},
		{"hablar", "hablár", 1},
		{"comer", "correr", 0.667},
		{"hola", "halo", 0.5},
		{"¡Hola mundo!", "hola mundo", 1},
		{"El niño juega.", "El nino juega", 1},
		{"gato", "perro", 0.2},
	})
}

func TestFuzzy_French(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeUnidecode), []pairCase{
		{"français", "francais", 1},
		{"à bientôt", "a bientot", 1},
		{"tête", "tete", 1},
		{"l'homme", "lhomme", 1},
		{"c'est", "cest", 1},
		{"bonjour", "bonsoir", 0.714},
		{"merci", "mercu", 0.8},
		{"chat", "chou", 0.5},
		{"ÉTÉ", "été", 1},
		{"fromage", "voiture", 0.143},
	})
}

func TestFuzzy_Chinese(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeUnidecode), []pairCase{
		{"你好", "你 好", 1},
		{"再见", "再 見", 1},
		{"谢谢", "謝謝", 1},
		{"中国", "中國", 1},
		{"你好", "nihao", 1},
		{"北京", "beijing", 1},
		{"上海", "shanghai", 1},
		{"你好", "nǐ hǎo", 1},
		{"北京", "běi jīng", 1},
		{"北京", "北景", 1},
		{"上海", "上好", 0.875},
		{"你好世界", "你好，世界！", 1},
		{"你好", "再见", 0.286},
		{"中国", "美国", 0.375},
	})
}

func TestFuzzy_IdentifierNumbers(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeUnidecode), []pairCase{
		{"RSSMRA85T10A562S", "RSSMRA85T10A562S", 1},
		{"rssmra85t10a562s", "RSSMRA85T10A562S", 1},
		{"RSSMRA85T10A562S", "R S S M R A 85 T10 A 562 S", 1},
		{"RSSMRA85T10A562S", "RSSMRA85T10A562R", 0.938},
		{"RSSMRA85T10A562S", "RSSMRA85T10A562", 0.938},
		{"RSSMRA85T10A562S", "RSSMRA85T10B562S", 0.938},
		{"CA1234567", "CA 1234567", 1},
		{"AB-9876543", "AB9876543", 1},
		{"CA1234567", "CA1234568", 0.889},
		{"RSSMRA85T10A562S", "RSSMRA8510A562", 0.875},
		{"CA1234567", "RSSMRA85T10A562S", 0.188},
		{"R.S.S.M.R.A.85T10A562S", "RSSMRA85T10A562S", 1},
		{"ID-IT-2023-AB1234", "id it 2023 ab1234", 1},
		{"ID-IT-2023-AB1234", "ID-IT-2023-AB1244", 0.929},
		{"XYZ123456", "RSSMRA85T10A562S", 0.125},
		{"AA1111111", "BB9999999", 0},
	})
}

func TestFuzzy_FoldTransliterator(t *testing.T) {
	runPairCases(t, newFuzzy(t, translit.ModeFold), []pairCase{
		{"café", "cafe", 1},
		{"Łódź", "lodz", 1},
		{"kitten", "sitting", 0.571},
		{"中国abc", "abc", 1},
	})
}

func TestFuzzy_InvalidInput(t *testing.T) {
	f := newFuzzy(t, translit.ModeUnidecode)
	tests := []struct {
		a, b    string
		mention string
	}{
		{"", "hello", `string ""`},
		{"hello", "", `string ""`},
		{"", "", `string ""`},
		{"!!!", "hello", `string "!!!"`},
		{"hello", "  ?? ", `string "  ?? "`},
	}
	for _, tt := range tests {
		_, err := f.Similarity(tt.a, tt.b)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Similarity(%q, %q) error = %v, want ErrInvalidInput", tt.a, tt.b, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.mention) {
			t.Errorf("Similarity(%q, %q) error = %q, want it to mention %s", tt.a, tt.b, err, tt.mention)
		}
	}
}

func TestSimilarText(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"ab", "ac", 0.5},
		{"ab", "ab", 1},
		{"a", "b", 0},
		{"World", "Word", 8.0 / 9.0},
		{"", "", 0},
	}
	for _, tt := range tests {
		if got := similarText(tt.a, tt.b); got != tt.want {
			t.Errorf("similarText(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
