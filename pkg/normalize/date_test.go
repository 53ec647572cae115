package normalize

import (
	"testing"
	"time"
)

type dateCase struct {
	input string
	want  string
	ok    bool
}

func runDateCases(t *testing.T, n *DateNormalizer, cases []dateCase) {
	t.Helper()
	for _, tt := range cases {
		got, ok := n.Normalize(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDateNormalizer(t *testing.T) {
	runDateCases(t, NewDateNormalizer(50), []dateCase{
		{"1979-03-12", "1979-03-12", true},
		{"1979/03/12", "1979-03-12", true},
		{"12/03/1979", "1979-03-12", true},
		{"12.03.1979", "1979-03-12", true},
		{"12/03/79", "1979-03-12", true},
		{"04/05/23", "2023-05-04", true},
		{"12-03.1979", "1979-03-12", true},
		{"   12 / 03 / 1979  ", "1979-03-12", true},
		{"1979-3-12", "1979-03-12", true},
		{"9/3/1979", "1979-03-09", true},
		{"1979.3.12", "1979-03-12", true},
		{"12.3.1979", "1979-03-12", true},
		{"10/31/1979", "1979-10-31", true},
		{"1979-31-10", "1979-10-31", true},
		{"2020/01/01", "2020-01-01", true},
		{"2020.01.01", "2020-01-01", true},
		{"1979-03", "", false},
		{"2020-01", "", false},
		{"1979-03-12-01", "", false},
		{"19790312", "", false},
		{"", "", false},
		{"   ", "", false},
		{"abc", "", false},
	})
}

func TestDateNormalizer_Ambiguous(t *testing.T) {
	runDateCases(t, NewDateNormalizer(50), []dateCase{
		// day first wins when both parts could be a month
		{"03/12/1979", "1979-12-03", true},
		{"12/03/1979", "1979-03-12", true},
		{"07/02/05", "2005-02-07", true},
		{"2-1-1979", "1979-01-02", true},
		// mixed separators fall through to the four-digit anchor
		{"15-7.1989", "1989-07-15", true},
		{"01--10/1990", "1990-10-01", true},
		{"1985-04-11", "1985-04-11", true},
		{"1999.3.12", "1999-03-12", true},
		// no anchor at all: day-month-year by position
		{"01--02--00", "2000-02-01", true},
		{"12/1979", "", false},
		{"Data: 12-03-1979!", "1979-03-12", true},
		{"20xx-01-01", "2001-01-20", true},
	})
}

func TestDateNormalizer_NoCalendarCheck(t *testing.T) {
	runDateCases(t, NewDateNormalizer(50), []dateCase{
		{"30/02/1979", "1979-02-30", true},
		// year-first shape keeps 13 as the day even though 31 is no month
		{"1979-13-31", "1979-31-13", true},
		{"40/40/1979", "1979-40-40", true},
	})
}

func TestDateNormalizer_TwoDigitYearThreshold(t *testing.T) {
	n := NewDateNormalizer(50)
	runDateCases(t, n, []dateCase{
		{"01/01/01", "2001-01-01", true},
		{"01/01/49", "2049-01-01", true},
		{"01/01/50", "1950-01-01", true},
		{"01/01/99", "1999-01-01", true},
	})

	n = NewDateNormalizer(0)
	runDateCases(t, n, []dateCase{
		{"01/01/00", "1900-01-01", true},
	})
}

func TestDateNormalizer_CurrentYearThreshold(t *testing.T) {
	n := NewDateNormalizer(CurrentYearThreshold)
	if want := time.Now().Year() % 100; n.Threshold() != want {
		t.Errorf("Threshold() = %d, want %d", n.Threshold(), want)
	}
}

func TestDateNormalizer_Parse(t *testing.T) {
	n := NewDateNormalizer(50)

	got, ok := n.Parse("9/3/1979")
	if !ok {
		t.Fatal("Parse(9/3/1979) failed")
	}
	want := CanonicalDate{Year: 1979, Month: 3, Day: 9}
	if got != want {
		t.Errorf("Parse(9/3/1979) = %+v, want %+v", got, want)
	}
	if got.String() != "1979-03-09" {
		t.Errorf("String() = %q, want 1979-03-09", got.String())
	}

	if _, ok := n.Parse("2020-01"); ok {
		t.Error("Parse(2020-01) should fail")
	}
}

func TestParseCanonical(t *testing.T) {
	tests := []struct {
		key  string
		want CanonicalDate
		ok   bool
	}{
		{"2020-01-31", CanonicalDate{2020, 1, 31}, true},
		{"1979-31-13", CanonicalDate{1979, 31, 13}, true},
		{"2020-01", CanonicalDate{}, false},
		{"2020-aa-01", CanonicalDate{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseCanonical(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCanonical(%q) = (%+v, %v), want (%+v, %v)", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}
