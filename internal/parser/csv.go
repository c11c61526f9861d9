package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RawRow is one CSV data row keyed by its (source-locale) column header.
type RawRow map[string]string

// ParseWarning represents a non-fatal issue encountered during CSV parsing.
type ParseWarning struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ParseResult contains the parsed rows alongside any warnings.
type ParseResult struct {
	Rows     []RawRow       `json:"rows"`
	Warnings []ParseWarning `json:"warnings"`
}

var ErrEmptyFile = errors.New("empty file: no header row found")

// Parse parses CSV bytes into header-keyed row maps. Malformed rows produce
// warnings instead of failing the whole file; mismatched column counts are
// padded or truncated to the header width.
func Parse(data []byte) (*ParseResult, error) {
	decoded, _, err := DetectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("encoding detection failed: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	// Variable field counts are handled below; lazy quotes tolerate the
	// real-world exports this service receives.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	headerCount := len(headers)
	var rows []RawRow
	var warnings []ParseWarning
	rowNum := 1 // 1-indexed, header is row 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++

		if err != nil {
			warnings = append(warnings, ParseWarning{
				Row:     rowNum,
				Message: fmt.Sprintf("parse error: %v", err),
			})
			continue
		}

		if len(record) != headerCount {
			if len(record) < headerCount {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; padding with empty values", len(record), headerCount),
				})
				padded := make([]string, headerCount)
				copy(padded, record)
				record = padded
			} else {
				warnings = append(warnings, ParseWarning{
					Row:     rowNum,
					Message: fmt.Sprintf("row has %d columns, expected %d; truncating extra columns", len(record), headerCount),
				})
				record = record[:headerCount]
			}
		}

		row := make(RawRow, headerCount)
		for i, h := range headers {
			row[h] = record[i]
		}
		rows = append(rows, row)
	}

	return &ParseResult{
		Rows:     rows,
		Warnings: warnings,
	}, nil
}
