package diff

import (
	"path"
	"strings"
)

// Config holds defaults applied to comparisons started by the CLI and the
// HTTP API.
type Config struct {
	// Kind is used when a request names none and the extension is unknown.
	Kind string `mapstructure:"kind" default:"delimited"`
	// Delimiter is the default field separator of delimited sources.
	Delimiter string `mapstructure:"delimiter" default:","`
	// ReportDir overrides the directory of derived report locations.
	ReportDir string `mapstructure:"report_dir" default:""`
	// BatchParallel bounds concurrent comparisons of the batch command.
	BatchParallel int `mapstructure:"batch_parallel" default:"4"`
}

// KindForLocation infers the source kind from the file extension of
// location, falling back to fallback.
func KindForLocation(location string, fallback SourceKind) SourceKind {
	switch strings.ToLower(path.Ext(baseName(location))) {
	case ".xlsx", ".xlsm", ".xls":
		return KindSpreadsheet
	case ".csv", ".tsv", ".txt":
		return KindDelimited
	default:
		return fallback
	}
}
