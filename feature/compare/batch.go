package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tablediff/core/diff"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Manifest lists comparisons for one batch run. Fields left empty in an
// entry are taken from Defaults, and an entry that sets write_report keeps
// its own value. report_path is per entry only, since entries sharing one
// path would overwrite each other's report.
type Manifest struct {
	Defaults    diff.Params  `yaml:"defaults"`
	Comparisons []BatchEntry `yaml:"comparisons"`
}

// BatchEntry is one named comparison of a manifest.
type BatchEntry struct {
	Name        string `yaml:"name"`
	diff.Params `yaml:",inline"`
}

// BatchOutcome is the result of one manifest entry.
type BatchOutcome struct {
	Name           string
	Request        diff.Request
	Result         *diff.Result
	ReportLocation string
	Err            error
	Took           time.Duration
}

// LoadManifest decodes a YAML manifest and applies its defaults.
func LoadManifest(r io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest is empty")
		}
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	if len(m.Comparisons) == 0 {
		return nil, fmt.Errorf("manifest has no comparisons")
	}
	if m.Defaults.ReportPath != "" {
		return nil, fmt.Errorf("report_path cannot be set in defaults, set it per comparison")
	}

	// Tells an explicit write_report: false apart from an unset one.
	var keys struct {
		Comparisons []map[string]yaml.Node `yaml:"comparisons"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	for i := range m.Comparisons {
		e := &m.Comparisons[i]
		_, writeSet := keys.Comparisons[i]["write_report"]
		e.Params = withDefaults(e.Params, m.Defaults, writeSet)
		if e.Name == "" {
			e.Name = fmt.Sprintf("comparison-%d", i+1)
		}
	}
	return &m, nil
}

func withDefaults(p, d diff.Params, writeSet bool) diff.Params {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	if p.Mode == "" {
		p.Mode = d.Mode
	}
	if p.Kind == "" {
		p.Kind = d.Kind
	}
	fill(&p.SourceA, d.SourceA)
	fill(&p.SourceB, d.SourceB)
	fill(&p.SingleSource, d.SingleSource)
	fill(&p.PartitionA, d.PartitionA)
	fill(&p.PartitionB, d.PartitionB)
	fill(&p.KeyColumn, d.KeyColumn)
	fill(&p.Delimiter, d.Delimiter)
	if !writeSet {
		p.WriteReport = d.WriteReport
	}
	return p
}

// RunBatch runs every entry with at most parallel comparisons at a time.
// One failing entry does not stop the others. Outcomes keep manifest order.
func (s *Service) RunBatch(ctx context.Context, entries []BatchEntry, parallel int) []BatchOutcome {
	if parallel <= 0 {
		parallel = 1
	}
	outcomes := make([]BatchOutcome, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, e := range entries {
		g.Go(func() error {
			outcomes[i] = s.runEntry(ctx, e)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

func (s *Service) runEntry(ctx context.Context, e BatchEntry) (out BatchOutcome) {
	out.Name = e.Name
	start := time.Now()
	defer func() { out.Took = time.Since(start) }()

	req, err := s.Resolve(e.Params)
	if err != nil {
		s.logger.Warn("Skipping invalid batch entry", zap.String("name", e.Name), zap.Error(err))
		out.Err = err
		return out
	}
	out.Request = req

	out.Result, out.Err = s.Compare(ctx, req)
	if out.Err == nil && req.Settings().Report.Write {
		out.ReportLocation = s.ReportLocation(req)
	}
	return out
}
