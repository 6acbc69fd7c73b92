package logging

// Standard field names for structured log output.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldFormat     = "format"
	FieldOperation  = "operation"
	FieldComponent  = "component"
	FieldStage      = "stage"
	FieldScenario   = "scenario"
	FieldFamily     = "family"
	FieldLabel      = "label"
	FieldCanonical  = "canonical"
	FieldKind       = "kind"
	FieldChart      = "chart"
	FieldColumns    = "columns"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
)
