package etl

import (
	"encoding/csv"
	"io"
	"regexp"
	"strings"
)

// bannerLine matches separator rows some vendors print around their exports
// (e.g. "----,----,----" or "====================").
var bannerLine = regexp.MustCompile(`^[\s\-=_|+,]+$`)

// PreprocessResult is a parsed file: ordered canonical headers plus rows
// keyed by canonical name with cleaned values.
type PreprocessResult struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Preprocess turns raw delimited text from any vendor into normalized rows.
// Banner lines are stripped, headers are mapped to the canonical vocabulary
// and every cell runs through NormalizeNull. Rows may be shorter than the
// header row; missing cells simply read as absent downstream.
func Preprocess(raw string) (*PreprocessResult, error) {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "" || bannerLine.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(kept, "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &PreprocessResult{Headers: []string{}, Rows: []Row{}}, nil
	}
	if err != nil {
		return nil, err
	}
	headers := MapHeaders(header)

	rows := []Row{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := Row{}
		for i, name := range headers {
			if i >= len(record) {
				break
			}
			if value, ok := NormalizeNull(record[i]); ok {
				row[name] = value
			}
		}
		rows = append(rows, row)
	}

	return &PreprocessResult{Headers: headers, Rows: rows}, nil
}
