// Package batch scores CSV files of value pairs and keeps the results in SQLite.
package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Pair is one line to score.
type Pair struct {
	Line int    `json:"line"`
	A    string `json:"a"`
	B    string `json:"b"`
}

// Format describes the CSV layout of a pairs file.
type Format struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	HasHeader bool   `yaml:"has_header"`
	// ColumnA and ColumnB name the header columns holding the pair.
	// Without a header the first two columns are used.
	ColumnA string `yaml:"column_a"`
	ColumnB string `yaml:"column_b"`
}

// ReadPairs reads every pair from r. Line numbers count data rows from 1.
func ReadPairs(r io.Reader, f Format) ([]Pair, error) {
	// Transcode non-UTF-8 input.
	if enc := f.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	cr := csv.NewReader(r)
	if f.Delimiter != "" {
		cr.Comma = []rune(f.Delimiter)[0]
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	idxA, idxB := 0, 1
	if f.HasHeader {
		header, err := cr.Read()
		if err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		if idxA, err = columnIndex(header, f.ColumnA, 0); err != nil {
			return nil, err
		}
		if idxB, err = columnIndex(header, f.ColumnB, 1); err != nil {
			return nil, err
		}
	}

	var pairs []Pair
	for line := 1; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		p := Pair{Line: line}
		if idxA < len(record) {
			p.A = record[idxA]
		}
		if idxB < len(record) {
			p.B = record[idxB]
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func columnIndex(header []string, name string, fallback int) (int, error) {
	if name == "" {
		return fallback, nil
	}
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found in header %v", name, header)
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
