package history

import (
	"time"

	"tablediff/core/diff"
)

// Status is the outcome of a recorded comparison.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded comparison.
type Run struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	Mode        string    `gorm:"size:16" json:"mode"`
	Description string    `gorm:"size:1024" json:"description"`
	KeyColumn   string    `gorm:"size:255" json:"key_column"`
	SourceA     string    `gorm:"size:1024" json:"source_a"`
	SourceB     string    `gorm:"size:1024" json:"source_b"`
	PartitionA  string    `gorm:"size:255" json:"partition_a"`
	PartitionB  string    `gorm:"size:255" json:"partition_b"`

	Identical   int `json:"identical"`
	Mismatched  int `json:"mismatched"`
	NotInA      int `json:"not_in_a"`
	NotInB      int `json:"not_in_b"`
	DuplicatesA int `json:"duplicates_a"`
	DuplicatesB int `json:"duplicates_b"`

	ReportLocation string `gorm:"size:1024" json:"report_location,omitempty"`
	Status         Status `gorm:"size:16;index" json:"status"`
	Error          string `gorm:"size:2048" json:"error,omitempty"`
}

// TableName overrides the gorm default.
func (Run) TableName() string {
	return "comparison_runs"
}

// Succeeded builds the record of a finished comparison.
func Succeeded(res *diff.Result, reportLocation string) *Run {
	sum := res.Summary()
	return &Run{
		CreatedAt:      res.GeneratedAt,
		Mode:           string(res.Mode),
		Description:    res.Description,
		KeyColumn:      res.KeyColumn,
		SourceA:        res.SourceA.Location,
		SourceB:        res.SourceB.Location,
		PartitionA:     res.SourceA.Partition,
		PartitionB:     res.SourceB.Partition,
		Identical:      sum.Identical,
		Mismatched:     sum.Mismatched,
		NotInA:         sum.NotInA,
		NotInB:         sum.NotInB,
		DuplicatesA:    res.Duplicates.A,
		DuplicatesB:    res.Duplicates.B,
		ReportLocation: reportLocation,
		Status:         StatusSucceeded,
	}
}

// Failed builds the record of a comparison that returned err.
func Failed(req diff.Request, err error) *Run {
	a, b := req.Sides()
	return &Run{
		Mode:        string(req.Mode()),
		Description: req.Describe(),
		KeyColumn:   req.Settings().KeyColumn,
		SourceA:     a.Location,
		SourceB:     b.Location,
		PartitionA:  a.Partition,
		PartitionB:  b.Partition,
		Status:      StatusFailed,
		Error:       err.Error(),
	}
}
