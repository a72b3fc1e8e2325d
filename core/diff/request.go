package diff

import (
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"tablediff/core/storage"
)

// SourceKind is the file format of the compared sources.
type SourceKind string

const (
	// KindSpreadsheet reads workbooks; partitions are sheets.
	KindSpreadsheet SourceKind = "spreadsheet"
	// KindDelimited reads comma, tab or otherwise delimited text.
	KindDelimited SourceKind = "delimited"
)

// Valid reports whether k is a recognized source kind.
func (k SourceKind) Valid() bool {
	return k == KindSpreadsheet || k == KindDelimited
}

// Mode selects between comparing two sources and comparing two partitions
// of a single source.
type Mode string

const (
	ModeSources    Mode = "sources"
	ModePartitions Mode = "partitions"
)

// DefaultDelimiter is used for delimited sources when none is given.
const DefaultDelimiter = ","

// ReportOptions controls report serialization.
type ReportOptions struct {
	// Write enables the report.
	Write bool `json:"write" yaml:"write"`
	// Location is a local path or storage URI. Empty derives one from the sources.
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Options are the settings shared by both request shapes.
type Options struct {
	KeyColumn string        `json:"key_column" yaml:"key_column"`
	Kind      SourceKind    `json:"kind" yaml:"kind"`
	Delimiter string        `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	Report    ReportOptions `json:"report" yaml:"report"`
}

// Side identifies one of the two compared tables.
type Side struct {
	Location  string
	Partition string
}

// Request is a validated description of one comparison. It is implemented
// by SourcesRequest and PartitionsRequest only.
type Request interface {
	// Mode returns the comparison mode of the request shape.
	Mode() Mode
	// Validate returns a *ConfigurationError for unusable parameters.
	Validate() error
	// Describe returns a human readable summary of what is compared.
	Describe() string
	// Settings returns the shared options.
	Settings() Options
	// Sides returns the locations and partitions of source A and source B.
	Sides() (a, b Side)

	isRequest()
}

// SourcesRequest compares two separate sources.
type SourcesRequest struct {
	PathA      string
	PathB      string
	PartitionA string
	PartitionB string
	Options
}

func (r SourcesRequest) isRequest() {}

// Mode implements Request.
func (r SourcesRequest) Mode() Mode { return ModeSources }

// Settings implements Request.
func (r SourcesRequest) Settings() Options { return r.Options }

// Sides implements Request.
func (r SourcesRequest) Sides() (Side, Side) {
	return Side{Location: r.PathA, Partition: r.PartitionA}, Side{Location: r.PathB, Partition: r.PartitionB}
}

// Validate implements Request.
func (r SourcesRequest) Validate() error {
	if err := validateKind(r.Kind); err != nil {
		return err
	}
	if r.PathA == "" {
		return configErrorf("sources mode requires a first source path")
	}
	if r.PathB == "" {
		return configErrorf("sources mode requires a second source path")
	}
	return r.Options.validate()
}

// Describe implements Request.
func (r SourcesRequest) Describe() string {
	return "file '" + baseName(r.PathA) + "' vs file '" + baseName(r.PathB) + "'"
}

// PartitionsRequest compares two sheets of a single spreadsheet.
type PartitionsRequest struct {
	Path       string
	PartitionA string
	PartitionB string
	Options
}

func (r PartitionsRequest) isRequest() {}

// Mode implements Request.
func (r PartitionsRequest) Mode() Mode { return ModePartitions }

// Settings implements Request.
func (r PartitionsRequest) Settings() Options { return r.Options }

// Sides implements Request.
func (r PartitionsRequest) Sides() (Side, Side) {
	return Side{Location: r.Path, Partition: r.PartitionA}, Side{Location: r.Path, Partition: r.PartitionB}
}

// Validate implements Request.
func (r PartitionsRequest) Validate() error {
	if err := validateKind(r.Kind); err != nil {
		return err
	}
	if r.Path == "" {
		return configErrorf("partitions mode requires the path of the source holding both partitions")
	}
	if r.PartitionA == "" || r.PartitionB == "" {
		return configErrorf("partitions mode requires both partition names")
	}
	if r.Kind != KindSpreadsheet {
		return configErrorf("partitions mode is only supported for %s sources", KindSpreadsheet)
	}
	return r.Options.validate()
}

// Describe implements Request.
func (r PartitionsRequest) Describe() string {
	return "sheet '" + r.PartitionA + "' vs sheet '" + r.PartitionB + "' in file '" + baseName(r.Path) + "'"
}

func validateKind(k SourceKind) error {
	if !k.Valid() {
		return configErrorf("source kind must be %q or %q, got %q", KindSpreadsheet, KindDelimited, k)
	}
	return nil
}

func (o Options) validate() error {
	if o.KeyColumn == "" {
		return configErrorf("a key column is required")
	}
	if o.Kind == KindDelimited {
		if _, err := ParseDelimiter(o.Delimiter); err != nil {
			return err
		}
	}
	return nil
}

// ParseDelimiter resolves a delimiter setting. It accepts a single
// character, the escape `\t`, or one of the names tab, comma, semicolon
// and pipe. An empty setting yields a comma.
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, configErrorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, configErrorf("delimiter %q is not allowed", s)
	}
	return r, nil
}

// Params is the flat parameter set accepted by the CLI, the HTTP API and
// batch manifests. Resolve turns it into one of the request shapes.
type Params struct {
	Mode         Mode       `json:"mode" yaml:"mode"`
	SourceA      string     `json:"source_a" yaml:"source_a"`
	SourceB      string     `json:"source_b" yaml:"source_b"`
	SingleSource string     `json:"single_source" yaml:"single_source"`
	PartitionA   string     `json:"partition_a" yaml:"partition_a"`
	PartitionB   string     `json:"partition_b" yaml:"partition_b"`
	KeyColumn    string     `json:"key_column" yaml:"key_column"`
	Kind         SourceKind `json:"kind" yaml:"kind"`
	Delimiter    string     `json:"delimiter" yaml:"delimiter"`
	WriteReport  bool       `json:"write_report" yaml:"write_report"`
	ReportPath   string     `json:"report_path" yaml:"report_path"`
}

// Resolve validates p and returns the matching request shape. An empty
// mode means ModeSources and an empty delimiter means DefaultDelimiter.
func (p Params) Resolve() (Request, error) {
	delim := p.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}
	opts := Options{
		KeyColumn: p.KeyColumn,
		Kind:      p.Kind,
		Delimiter: delim,
		Report:    ReportOptions{Write: p.WriteReport, Location: p.ReportPath},
	}

	var req Request
	switch p.Mode {
	case ModeSources, "":
		req = SourcesRequest{
			PathA:      p.SourceA,
			PathB:      p.SourceB,
			PartitionA: p.PartitionA,
			PartitionB: p.PartitionB,
			Options:    opts,
		}
	case ModePartitions:
		req = PartitionsRequest{
			Path:       p.SingleSource,
			PartitionA: p.PartitionA,
			PartitionB: p.PartitionB,
			Options:    opts,
		}
	default:
		return nil, configErrorf("mode must be %q or %q, got %q", ModeSources, ModePartitions, p.Mode)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// baseName returns the final element of a local path or storage URI.
func baseName(location string) string {
	if storage.IsURI(location) {
		return path.Base(location)
	}
	return filepath.Base(location)
}
