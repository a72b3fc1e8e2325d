package diff

import (
	"context"
	"errors"
	"sort"
	"time"

	"tablediff/core/tabular"
)

// LoadSpec describes one table for a Loader.
type LoadSpec struct {
	Location  string
	Kind      SourceKind
	Partition string
	// Delimiter is the field separator for delimited sources.
	Delimiter rune
}

// Loader reads a table. When Partition is empty and the source has several
// partitions, implementations select the first one and record its name in
// the returned table.
type Loader interface {
	Load(ctx context.Context, spec LoadSpec) (*tabular.Table, error)
}

// Comparer runs a single comparison.
type Comparer interface {
	Compare(ctx context.Context, req Request) (*Result, error)
}

// Engine compares two tables loaded through Loader. It holds no mutable
// state, so one Engine may serve concurrent comparisons.
type Engine struct {
	Loader Loader
	// Now stamps results. It defaults to time.Now.
	Now func() time.Time
}

// NewEngine creates an engine reading sources through loader.
func NewEngine(loader Loader) *Engine {
	return &Engine{Loader: loader, Now: time.Now}
}

// Compare validates req, loads both sides and classifies their keys.
// Errors are one of *ConfigurationError, *SourceLoadError,
// *KeyColumnMissing or *NoCommonColumns; no partial result is returned.
func (e *Engine) Compare(ctx context.Context, req Request) (*Result, error) {
	if req == nil {
		return nil, configErrorf("no comparison request given")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	opts := req.Settings()
	var delim rune
	if opts.Kind == KindDelimited {
		delim, _ = ParseDelimiter(opts.Delimiter)
	}

	sideA, sideB := req.Sides()
	tblA, err := e.load(ctx, sideA, opts.Kind, delim)
	if err != nil {
		return nil, err
	}
	tblB, err := e.load(ctx, sideB, opts.Kind, delim)
	if err != nil {
		return nil, err
	}

	res, err := CompareTables(tblA, tblB, opts.KeyColumn)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	res.Mode = req.Mode()
	res.Description = req.Describe()
	res.SourceA.Location = sideA.Location
	res.SourceB.Location = sideB.Location
	res.GeneratedAt = now()
	return res, nil
}

func (e *Engine) load(ctx context.Context, side Side, kind SourceKind, delim rune) (*tabular.Table, error) {
	if e.Loader == nil {
		return nil, &SourceLoadError{Path: side.Location, Cause: errors.New("no source loader configured")}
	}
	tbl, err := e.Loader.Load(ctx, LoadSpec{
		Location:  side.Location,
		Kind:      kind,
		Partition: side.Partition,
		Delimiter: delim,
	})
	if err != nil {
		var loadErr *SourceLoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &SourceLoadError{Path: side.Location, Cause: err}
	}
	return tbl, nil
}

// CompareTables classifies the keys of a and b. It is the pure core of
// Compare and does not set the request-derived fields of the result.
func CompareTables(a, b *tabular.Table, keyColumn string) (*Result, error) {
	keyA, ok := a.Column(keyColumn)
	if !ok {
		return nil, &KeyColumnMissing{Side: "A", Column: keyColumn, Available: a.ColumnNames()}
	}
	keyB, ok := b.Column(keyColumn)
	if !ok {
		return nil, &KeyColumnMissing{Side: "B", Column: keyColumn, Available: b.ColumnNames()}
	}

	common := commonColumns(a, b)
	type pair struct {
		name string
		a, b *tabular.Column
	}
	var compared []pair
	for _, name := range common {
		if name == keyColumn {
			continue
		}
		ca, _ := a.Column(name)
		cb, _ := b.Column(name)
		compared = append(compared, pair{name: name, a: ca, b: cb})
	}
	if len(compared) == 0 {
		return nil, &NoCommonColumns{KeyColumn: keyColumn}
	}

	rowsA := dedupe(keyA)
	rowsB := dedupe(keyB)

	res := &Result{
		KeyColumn:     keyColumn,
		CommonColumns: common,
		SourceA:       SourceInfo{Name: a.Name, Partition: a.Partition, Rows: a.Len()},
		SourceB:       SourceInfo{Name: b.Name, Partition: b.Partition, Rows: b.Len()},
		Identical:     []tabular.Cell{},
		Mismatches:    []Mismatch{},
		NotInA:        []tabular.Cell{},
		NotInB:        []tabular.Cell{},
		Duplicates:    Duplicates{A: rowsA.dropped, B: rowsB.dropped},
	}

	for _, key := range rowsB.order {
		if _, found := rowsA.index[key.Key()]; !found {
			res.NotInA = append(res.NotInA, key)
		}
	}

	for _, key := range rowsA.order {
		ib, found := rowsB.index[key.Key()]
		if !found {
			res.NotInB = append(res.NotInB, key)
			continue
		}
		ia := rowsA.index[key.Key()]

		var diffs []ColumnDiff
		for _, p := range compared {
			va, vb := p.a.Cells[ia], p.b.Cells[ib]
			if tabular.Equal(va, vb) {
				continue
			}
			diffs = append(diffs, ColumnDiff{Column: p.name, ValueB: vb, ValueA: va})
		}

		if len(diffs) == 0 {
			res.Identical = append(res.Identical, key)
		} else {
			res.Mismatches = append(res.Mismatches, newMismatch(keyColumn, key, diffs))
		}
	}

	tabular.SortCells(res.Identical)
	tabular.SortCells(res.NotInA)
	tabular.SortCells(res.NotInB)
	sort.SliceStable(res.Mismatches, func(i, j int) bool {
		return tabular.Compare(res.Mismatches[i].Key, res.Mismatches[j].Key) < 0
	})

	return res, nil
}

// commonColumns returns the columns of a, in a's order, that b also has.
func commonColumns(a, b *tabular.Table) []string {
	var out []string
	for _, name := range a.ColumnNames() {
		if b.Index(name) >= 0 {
			out = append(out, name)
		}
	}
	return out
}

// keyedRows maps each distinct key to the first row holding it.
type keyedRows struct {
	// order lists distinct keys in first-seen order.
	order   []tabular.Cell
	index   map[tabular.Key]int
	dropped int
}

func dedupe(key *tabular.Column) keyedRows {
	kr := keyedRows{index: make(map[tabular.Key]int, len(key.Cells))}
	for row, cell := range key.Cells {
		k := cell.Key()
		if _, seen := kr.index[k]; seen {
			kr.dropped++
			continue
		}
		kr.index[k] = row
		kr.order = append(kr.order, cell)
	}
	return kr
}
