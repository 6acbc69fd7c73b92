// Package validation checks command inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"satimge/satimge-charts/internal/dataio"
)

// IsValidInputFile checks that path exists and is a regular file.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, expected a file", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// IsValidDatasetFile checks that path is an existing .csv or .parquet file.
func IsValidDatasetFile(path string) error {
	if err := IsValidInputFile(path); err != nil {
		return err
	}
	if _, err := dataio.FormatFromPath(path); err != nil {
		return fmt.Errorf("dataset %s: %w", path, err)
	}
	return nil
}

// IsValidWorkbook checks that path is an existing Excel workbook.
func IsValidWorkbook(path string) error {
	if err := IsValidInputFile(path); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return nil
	default:
		return fmt.Errorf("unsupported workbook %s. Supported extensions are '.xlsx', '.xlsm'", path)
	}
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'json', 'yaml'", format)
	}
}
