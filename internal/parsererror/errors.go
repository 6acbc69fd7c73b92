// Package parsererror holds the typed errors raised while reading and
// enriching datasets. Classification gaps are never errors; these types
// cover structural problems that must stop the pipeline.
package parsererror

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns absent from a dataset.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	src := e.Source
	if src == "" {
		src = "dataset"
	}
	return fmt.Sprintf("%s is missing required column(s): %s", src, strings.Join(e.Missing, ", "))
}

// ValidationError reports a failed configuration or input check.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}

// InvalidFormatError reports an input file that does not have the expected layout.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DataExtractionError reports a well-formed file from which a required field
// could not be read.
type DataExtractionError struct {
	FilePath  string
	FieldName string
	Reason    string
	Err       error
}

func (e *DataExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s: %v",
			e.FilePath, e.FieldName, e.Reason, e.Err)
	}
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s",
		e.FilePath, e.FieldName, e.Reason)
}

func (e *DataExtractionError) Unwrap() error {
	return e.Err
}
