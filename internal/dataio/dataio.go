package dataio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"satimge/satimge-charts/internal/fileutils"
	"satimge/satimge-charts/internal/logging"
	"satimge/satimge-charts/internal/models"
	"satimge/satimge-charts/internal/parsererror"
)

// DefaultDelimiter separates CSV fields unless configured otherwise.
const DefaultDelimiter = ','

// IO reads and writes datasets.
type IO struct {
	delimiter rune
	logger    logging.Logger
}

// New creates an IO. A zero delimiter selects DefaultDelimiter.
func New(delimiter rune, logger logging.Logger) *IO {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &IO{delimiter: delimiter, logger: logger}
}

// Delimiter returns the CSV delimiter in use.
func (d *IO) Delimiter() rune {
	return d.delimiter
}

// ReadDataset reads a raw extract. The columns the file declares are kept
// on the dataset so that the assembler can check them.
func (d *IO) ReadDataset(path string) (*models.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: "CSV or Parquet", Msg: err.Error()}
	}
	log := d.logger.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
	)
	log.Info("Reading dataset")

	ds := &models.Dataset{Source: filepath.Base(path)}
	switch format {
	case FormatParquet:
		cols, err := parquetColumns(path)
		if err != nil {
			return nil, fmt.Errorf("error reading Parquet schema of %s: %w", path, err)
		}
		rows, err := readParquet[rawParquetRow](path)
		if err != nil {
			return nil, fmt.Errorf("error reading Parquet file %s: %w", path, err)
		}
		ds.Columns = cols
		ds.Records = make([]models.Record, len(rows))
		for i, r := range rows {
			ds.Records[i] = r.record()
		}
	default:
		rows, header, err := readCSV[rawRow](path, d.delimiter)
		if err != nil {
			return nil, d.csvError(path, err)
		}
		ds.Columns = header
		ds.Records = make([]models.Record, len(rows))
		malformed := 0
		for i, r := range rows {
			ds.Records[i] = r.record()
			if r.Value != "" && math.IsNaN(ds.Records[i].Value) {
				malformed++
			}
		}
		if malformed > 0 {
			log.Debug("Non-numeric values read as NaN", logging.Field{Key: logging.FieldCount, Value: malformed})
		}
	}

	log.Info("Dataset loaded",
		logging.Field{Key: logging.FieldCount, Value: len(ds.Records)},
		logging.Field{Key: logging.FieldColumns, Value: ds.Columns})
	return ds, nil
}

func (d *IO) csvError(path string, err error) error {
	if errors.Is(err, gocsv.ErrEmptyCSVFile) {
		return &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: "CSV with a header row", Msg: "file is empty"}
	}
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("dataset not found: %w", err)
	}
	return fmt.Errorf("error reading CSV file %s: %w", path, err)
}

// WriteEnriched writes ds to path in the format of its extension.
func (d *IO) WriteEnriched(ds *models.EnrichedDataset, path string) error {
	if ds == nil {
		return fmt.Errorf("cannot write nil dataset")
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatParquet:
		rows := make([]enrichedParquetRow, len(ds.Records))
		for i, r := range ds.Records {
			rows[i] = toEnrichedParquetRow(r)
		}
		err = writeParquet(path, rows)
	default:
		rows := make([]enrichedRow, len(ds.Records))
		for i, r := range ds.Records {
			rows[i] = toEnrichedRow(r)
		}
		err = WriteCSV(path, rows, d.delimiter)
	}
	if err != nil {
		return err
	}

	d.logger.Info("Enriched dataset written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: ds.Len()})
	return nil
}

// ReadEnriched reads a dataset written by WriteEnriched.
func (d *IO) ReadEnriched(path string) (*models.EnrichedDataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	ds := &models.EnrichedDataset{Source: filepath.Base(path)}

	switch format {
	case FormatParquet:
		rows, err := readParquet[enrichedParquetRow](path)
		if err != nil {
			return nil, fmt.Errorf("error reading Parquet file %s: %w", path, err)
		}
		ds.Records = make([]models.EnrichedRecord, len(rows))
		for i, r := range rows {
			ds.Records[i] = r.record()
		}
	default:
		rows, header, err := readCSV[enrichedRow](path, d.delimiter)
		if err != nil {
			return nil, d.csvError(path, err)
		}
		written := &models.Dataset{Columns: header}
		if missing := written.MissingColumns(models.EnrichedColumns); len(missing) > 0 {
			return nil, &parsererror.SchemaError{Source: ds.Source, Missing: missing}
		}
		ds.Records = make([]models.EnrichedRecord, len(rows))
		for i, r := range rows {
			ds.Records[i] = r.record()
		}
	}

	d.logger.Debug("Enriched dataset loaded",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: ds.Len()})
	return ds, nil
}

// ResolveEnriched finds the enriched dataset name in dir, preferring Parquet
// over CSV.
func ResolveEnriched(dir, name string) (string, error) {
	var tried []string
	for _, f := range []Format{FormatParquet, FormatCSV} {
		p := filepath.Join(dir, name+f.Extension())
		if fileutils.FileExists(p) {
			return p, nil
		}
		tried = append(tried, p)
	}
	return "", fmt.Errorf("could not find dataset, expected one of %v", tried)
}
