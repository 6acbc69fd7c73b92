// Package dataio reads raw SATIMGE extracts and reads and writes enriched
// datasets as CSV or Parquet.
package dataio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a tabular file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported dataset format '%s' (want csv or parquet)", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ParseFormat(ext)
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}
