package compare

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tablediff/core/diff"
	"tablediff/core/history"
	"tablediff/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrHistoryDisabled is returned by the run queries when no repository is set.
var ErrHistoryDisabled = errors.New("run history is disabled")

// Service runs comparisons, delivers their reports and records them.
type Service struct {
	engine  diff.Comparer
	reports *ReportWriter
	runs    *history.Repository
	cfg     diff.Config
	logger  *zap.Logger

	group singleflight.Group
	jobs  *jobRegistry
}

// NewService creates a comparison service. runs may be nil to disable history.
func NewService(engine diff.Comparer, reports *ReportWriter, runs *history.Repository, cfg diff.Config, maxJobs int, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		reports: reports,
		runs:    runs,
		cfg:     cfg,
		logger:  logger,
		jobs:    newJobRegistry(maxJobs),
	}
}

// Resolve applies the configured defaults to p and validates it. The kind
// falls back to the extension of the first source, then to the configured kind.
func (s *Service) Resolve(p diff.Params) (diff.Request, error) {
	if p.Kind == "" {
		first := p.SourceA
		if p.Mode == diff.ModePartitions {
			first = p.SingleSource
		}
		p.Kind = diff.KindForLocation(first, diff.SourceKind(s.cfg.Kind))
	}
	if p.Delimiter == "" {
		p.Delimiter = s.cfg.Delimiter
	}
	return p.Resolve()
}

// Compare implements diff.Comparer. Identical requests that overlap in time
// share one execution.
func (s *Service) Compare(ctx context.Context, req diff.Request) (*diff.Result, error) {
	if req == nil {
		return s.engine.Compare(ctx, req)
	}

	key := fmt.Sprintf("%T%+v", req, req)
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.compare(ctx, req)
	})
	if shared {
		s.logger.Debug("Joined in-flight comparison", zap.String("comparison", req.Describe()))
	}
	if err != nil {
		return nil, err
	}
	return v.(*diff.Result), nil
}

func (s *Service) compare(ctx context.Context, req diff.Request) (*diff.Result, error) {
	l := s.logger.With(zap.String("comparison", req.Describe()))
	start := time.Now()

	res, err := s.engine.Compare(ctx, req)
	if err != nil {
		l.Error("Comparison failed", zap.Error(err))
		s.record(ctx, history.Failed(req, err))
		return nil, err
	}

	if res.Duplicates.A > 0 || res.Duplicates.B > 0 {
		l.Warn("Duplicate keys dropped, first occurrence kept",
			zap.Int("source_a", res.Duplicates.A),
			zap.Int("source_b", res.Duplicates.B))
	}

	var location string
	if req.Settings().Report.Write {
		location = s.ReportLocation(req)
		if err := s.writeReport(ctx, location, res); err != nil {
			l.Error("Report delivery failed", zap.String("location", location), zap.Error(err))
			s.record(ctx, history.Failed(req, err))
			return nil, err
		}
		l.Info("Report written", zap.String("location", location))
	}

	s.record(ctx, history.Succeeded(res, location))

	sum := res.Summary()
	l.Info("Comparison finished",
		zap.Int("identical", sum.Identical),
		zap.Int("mismatched", sum.Mismatched),
		zap.Int("not_in_a", sum.NotInA),
		zap.Int("not_in_b", sum.NotInB),
		zap.Duration("took", time.Since(start)))

	return res, nil
}

func (s *Service) writeReport(ctx context.Context, location string, res *diff.Result) error {
	data, err := diff.RenderReport(res)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return s.reports.Write(ctx, location, data)
}

// ReportLocation is where the report of req goes. An explicit location wins;
// otherwise the derived name is placed in the configured report directory,
// or next to source A when none is set.
func (s *Service) ReportLocation(req diff.Request) string {
	location := diff.ReportLocation(req)
	if req.Settings().Report.Location != "" || s.cfg.ReportDir == "" {
		return location
	}

	name := filepath.Base(location)
	if storage.IsURI(location) {
		name = location[strings.LastIndex(location, "/")+1:]
	}
	if storage.IsURI(s.cfg.ReportDir) {
		return strings.TrimSuffix(s.cfg.ReportDir, "/") + "/" + name
	}
	return filepath.Join(s.cfg.ReportDir, name)
}

// record saves run when history is enabled. Failures are logged only.
func (s *Service) record(ctx context.Context, run *history.Run) {
	if s.runs == nil {
		return
	}
	if err := s.runs.Save(ctx, run); err != nil {
		s.logger.Warn("Failed to record comparison run", zap.Error(err))
	}
}

// Submit starts req in the background and returns its job.
func (s *Service) Submit(req diff.Request) *Job {
	e := &jobEntry{
		id:        uuid.NewString(),
		submitted: time.Now().UTC(),
		task:      diff.Start(context.Background(), s, req),
	}
	s.jobs.add(e)
	return e.snapshot()
}

// Job returns the current state of a submitted comparison.
func (s *Service) Job(id string) (*Job, bool) {
	e, ok := s.jobs.get(id)
	if !ok {
		return nil, false
	}
	return e.snapshot(), true
}

// Runs lists recorded comparisons, newest first.
func (s *Service) Runs(ctx context.Context, limit int) ([]history.Run, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.List(ctx, limit)
}

// Run returns one recorded comparison.
func (s *Service) Run(ctx context.Context, id string) (*history.Run, error) {
	if s.runs == nil {
		return nil, ErrHistoryDisabled
	}
	return s.runs.Get(ctx, id)
}
