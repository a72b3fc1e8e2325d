package diff

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"tablediff/core/tabular"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mapLoader serves prepared tables keyed by "location#partition".
type mapLoader struct {
	tables map[string]*tabular.Table
	specs  []LoadSpec
}

func (m *mapLoader) Load(ctx context.Context, spec LoadSpec) (*tabular.Table, error) {
	m.specs = append(m.specs, spec)
	tbl, ok := m.tables[spec.Location+"#"+spec.Partition]
	if !ok {
		return nil, fmt.Errorf("no table for %s", spec.Location)
	}
	return tbl, nil
}

// mockLoader is a testify mock of Loader.
type mockLoader struct {
	mock.Mock
}

func (m *mockLoader) Load(ctx context.Context, spec LoadSpec) (*tabular.Table, error) {
	args := m.Called(ctx, spec)
	if tbl, ok := args.Get(0).(*tabular.Table); ok {
		return tbl, args.Error(1)
	}
	return nil, args.Error(1)
}

func mustTable(t *testing.T, name string, header []string, rows ...[]string) *tabular.Table {
	t.Helper()
	tbl, err := tabular.FromRecords(name, "delimited file", header, rows)
	require.NoError(t, err)
	return tbl
}

func cellStrings(cells []tabular.Cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.String()
	}
	return out
}

func fixedNow() time.Time {
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
}

func csvRequest(a, b, key string) SourcesRequest {
	return SourcesRequest{
		PathA:   a,
		PathB:   b,
		Options: Options{KeyColumn: key, Kind: KindDelimited, Delimiter: ","},
	}
}

func TestCompare_BasicScenario(t *testing.T) {
	loader := &mapLoader{tables: map[string]*tabular.Table{
		"a.csv#": mustTable(t, "a.csv", []string{"id", "val"}, []string{"1", "x"}, []string{"2", "y"}),
		"b.csv#": mustTable(t, "b.csv", []string{"id", "val"}, []string{"1", "x"}, []string{"3", "z"}),
	}}
	engine := &Engine{Loader: loader, Now: fixedNow}

	res, err := engine.Compare(context.Background(), csvRequest("a.csv", "b.csv", "id"))
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, cellStrings(res.Identical))
	assert.Empty(t, res.Mismatches)
	assert.Equal(t, []string{"3"}, cellStrings(res.NotInA))
	assert.Equal(t, []string{"2"}, cellStrings(res.NotInB))
	assert.Equal(t, ModeSources, res.Mode)
	assert.Equal(t, "file 'a.csv' vs file 'b.csv'", res.Description)
	assert.Equal(t, []string{"id", "val"}, res.CommonColumns)
	assert.Equal(t, fixedNow(), res.GeneratedAt)
	assert.Equal(t, "a.csv", res.SourceA.Location)
	assert.Equal(t, 2, res.SourceB.Rows)

	require.Len(t, loader.specs, 2)
	assert.Equal(t, ',', loader.specs[0].Delimiter)
	assert.Equal(t, KindDelimited, loader.specs[1].Kind)
}

// A key only in B belongs to NotInA ("missing from A"), never NotInB.
func TestCompare_Directionality(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "v"}, []string{"1", "x"})
	b := mustTable(t, "b", []string{"id", "v"}, []string{"1", "x"}, []string{"99", "only-b"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)

	assert.Equal(t, []string{"99"}, cellStrings(res.NotInA))
	assert.Empty(t, res.NotInB)

	res, err = CompareTables(b, a, "id")
	require.NoError(t, err)

	assert.Empty(t, res.NotInA)
	assert.Equal(t, []string{"99"}, cellStrings(res.NotInB))
}

func TestCompare_MismatchFormatting(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "amount", "note"}, []string{"5", "10", "same"})
	b := mustTable(t, "b", []string{"id", "amount", "note"}, []string{"5", "12", "same"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)
	require.Len(t, res.Mismatches, 1)

	m := res.Mismatches[0]
	assert.Equal(t, "5", m.Key.String())
	require.Len(t, m.Columns, 1)
	assert.Equal(t, "amount", m.Columns[0].Column)
	assert.Equal(t, "12", m.Columns[0].ValueB.String())
	assert.Equal(t, "10", m.Columns[0].ValueA.String())
	assert.Equal(t, "[id=5] amount: '12' vs '10'", m.Detail)
	assert.Empty(t, res.Identical)
}

func TestCompare_MultipleDifferingColumns(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "name", "qty"}, []string{"7", "bolt", "3"})
	b := mustTable(t, "b", []string{"qty", "name", "id"}, []string{"4", "nut", "7"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)
	require.Len(t, res.Mismatches, 1)
	assert.Equal(t, "[id=7] name: 'nut' vs 'bolt'; qty: '4' vs '3'", res.Mismatches[0].Detail)
}

func TestCompare_NullEquality(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "v", "w"}, []string{"1", "", "x"}, []string{"2", "NaN", "y"})
	b := mustTable(t, "b", []string{"id", "v", "w"}, []string{"1", "", "x"}, []string{"2", "", "y"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, cellStrings(res.Identical))
	assert.Empty(t, res.Mismatches)
}

func TestCompare_NullVersusValueIsMismatch(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "v"}, []string{"1", ""})
	b := mustTable(t, "b", []string{"id", "v"}, []string{"1", "x"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)
	require.Len(t, res.Mismatches, 1)
	assert.Equal(t, "[id=1] v: 'x' vs ''", res.Mismatches[0].Detail)
}

func TestCompare_TypedEquality(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "amount", "day"}, []string{"1", "10", "2025-12-08"})
	b := mustTable(t, "b", []string{"id", "amount", "day"}, []string{"1.0", "10.00", "2025/12/08"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)
	assert.Len(t, res.Identical, 1)
	assert.Empty(t, res.NotInA)
	assert.Empty(t, res.NotInB)
}

func TestCompare_DuplicateKeysKeepFirst(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "v"}, []string{"1", "a"}, []string{"1", "b"}, []string{"2", "c"}, []string{"2", "d"}, []string{"2", "e"})
	b := mustTable(t, "b", []string{"id", "v"}, []string{"1", "a"}, []string{"2", "c"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2"}, cellStrings(res.Identical))
	assert.Equal(t, 3, res.Duplicates.A)
	assert.Equal(t, 0, res.Duplicates.B)
	assert.Equal(t, 5, res.SourceA.Rows)
}

func TestCompare_DuplicateKeyUsesFirstRow(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "v"}, []string{"1", "a"}, []string{"1", "b"})
	b := mustTable(t, "b", []string{"id", "v"}, []string{"1", "b"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)
	require.Len(t, res.Mismatches, 1)
	assert.Equal(t, "[id=1] v: 'b' vs 'a'", res.Mismatches[0].Detail)
	assert.Equal(t, 1, res.Duplicates.A)
}

func TestCompare_ColumnErrors(t *testing.T) {
	t.Run("KeyMissingInA", func(t *testing.T) {
		a := mustTable(t, "a", []string{"code", "v"})
		b := mustTable(t, "b", []string{"id", "v"})

		_, err := CompareTables(a, b, "id")
		var keyErr *KeyColumnMissing
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, "A", keyErr.Side)
		assert.Equal(t, []string{"code", "v"}, keyErr.Available)
		assert.Contains(t, err.Error(), "code, v")
	})

	t.Run("KeyMissingInB", func(t *testing.T) {
		a := mustTable(t, "a", []string{"id", "v"})
		b := mustTable(t, "b", []string{"v"})

		_, err := CompareTables(a, b, "id")
		var keyErr *KeyColumnMissing
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, "B", keyErr.Side)
	})

	t.Run("OnlyKeyShared", func(t *testing.T) {
		a := mustTable(t, "a", []string{"id", "left"}, []string{"1", "x"})
		b := mustTable(t, "b", []string{"id", "right"}, []string{"1", "y"})

		_, err := CompareTables(a, b, "id")
		var noCommon *NoCommonColumns
		assert.ErrorAs(t, err, &noCommon)
	})
}

func TestCompare_OrdersKeysNaturally(t *testing.T) {
	a := mustTable(t, "a", []string{"id", "v"}, []string{"10", "x"}, []string{"9", "x"}, []string{"100", "x"}, []string{"b", "1"}, []string{"a", "1"})
	b := mustTable(t, "b", []string{"id", "v"}, []string{"100", "y"}, []string{"a", "2"}, []string{"10", "x"}, []string{"b", "2"}, []string{"9", "x"})

	res, err := CompareTables(a, b, "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "10"}, cellStrings(res.Identical))

	keys := make([]string, len(res.Mismatches))
	for i, m := range res.Mismatches {
		keys[i] = m.Key.String()
	}
	assert.Equal(t, []string{"100", "a", "b"}, keys)
}

func TestCompare_Partitions(t *testing.T) {
	loader := &mapLoader{tables: map[string]*tabular.Table{
		"book.xlsx#S1": mustTable(t, "book.xlsx", []string{"id", "v"}, []string{"1", "x"}),
		"book.xlsx#S2": mustTable(t, "book.xlsx", []string{"id", "v"}, []string{"1", "x"}),
	}}
	engine := &Engine{Loader: loader, Now: fixedNow}

	req := PartitionsRequest{
		Path:       "book.xlsx",
		PartitionA: "S1",
		PartitionB: "S2",
		Options:    Options{KeyColumn: "id", Kind: KindSpreadsheet},
	}
	res, err := engine.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ModePartitions, res.Mode)
	assert.Equal(t, "sheet 'S1' vs sheet 'S2' in file 'book.xlsx'", res.Description)
	assert.Len(t, res.Identical, 1)

	require.Len(t, loader.specs, 2)
	assert.Equal(t, "S1", loader.specs[0].Partition)
	assert.Equal(t, "S2", loader.specs[1].Partition)
	assert.Equal(t, rune(0), loader.specs[0].Delimiter)
}

func TestCompare_Errors(t *testing.T) {
	t.Run("InvalidRequest", func(t *testing.T) {
		engine := NewEngine(new(mockLoader))
		_, err := engine.Compare(context.Background(), csvRequest("a.csv", "", "id"))
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("NilRequest", func(t *testing.T) {
		engine := NewEngine(new(mockLoader))
		_, err := engine.Compare(context.Background(), nil)
		var cfgErr *ConfigurationError
		assert.ErrorAs(t, err, &cfgErr)
	})

	t.Run("LoaderErrorIsWrapped", func(t *testing.T) {
		loader := new(mockLoader)
		cause := errors.New("disk on fire")
		loader.On("Load", mock.Anything, mock.MatchedBy(func(s LoadSpec) bool { return s.Location == "a.csv" })).
			Return(nil, cause)

		_, err := NewEngine(loader).Compare(context.Background(), csvRequest("a.csv", "b.csv", "id"))
		var loadErr *SourceLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, "a.csv", loadErr.Path)
		assert.ErrorIs(t, err, cause)
		loader.AssertNumberOfCalls(t, "Load", 1)
	})

	t.Run("LoaderSourceLoadErrorKept", func(t *testing.T) {
		loader := new(mockLoader)
		original := &SourceLoadError{Path: "s3://bucket/b.csv", Cause: errors.New("denied")}
		loader.On("Load", mock.Anything, mock.MatchedBy(func(s LoadSpec) bool { return s.Location == "a.csv" })).
			Return(mustTable(t, "a.csv", []string{"id", "v"}), nil)
		loader.On("Load", mock.Anything, mock.MatchedBy(func(s LoadSpec) bool { return s.Location == "b.csv" })).
			Return(nil, original)

		_, err := NewEngine(loader).Compare(context.Background(), csvRequest("a.csv", "b.csv", "id"))
		var loadErr *SourceLoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Same(t, original, loadErr)
	})

	t.Run("NoLoader", func(t *testing.T) {
		_, err := (&Engine{}).Compare(context.Background(), csvRequest("a.csv", "b.csv", "id"))
		var loadErr *SourceLoadError
		assert.ErrorAs(t, err, &loadErr)
	})
}

// randomTable builds a table whose keys come from a small domain so that
// duplicates and partial overlaps are frequent.
func randomTable(t *testing.T, faker *gofakeit.Faker, name string) *tabular.Table {
	rows := make([][]string, faker.Number(0, 30))
	for i := range rows {
		val := faker.RandomString([]string{"red", "green", "blue", ""})
		rows[i] = []string{strconv.Itoa(faker.Number(1, 25)), val, faker.RandomString([]string{"1", "2", "NaN"})}
	}
	return mustTable(t, name, []string{"id", "color", "size"}, rows...)
}

func distinctKeys(tbl *tabular.Table) map[tabular.Key]struct{} {
	col, _ := tbl.Column("id")
	out := map[tabular.Key]struct{}{}
	for _, c := range col.Cells {
		out[c.Key()] = struct{}{}
	}
	return out
}

func TestCompare_PartitionProperty(t *testing.T) {
	faker := gofakeit.New(20260119)

	for i := 0; i < 50; i++ {
		a := randomTable(t, faker, "a")
		b := randomTable(t, faker, "b")

		res, err := CompareTables(a, b, "id")
		require.NoError(t, err)

		keysA, keysB := distinctKeys(a), distinctKeys(b)
		assert.Equal(t, a.Len()-len(keysA), res.Duplicates.A)
		assert.Equal(t, b.Len()-len(keysB), res.Duplicates.B)

		seen := map[tabular.Key]string{}
		record := func(bucket string, k tabular.Cell) {
			prev, dup := seen[k.Key()]
			assert.False(t, dup, "key %s in %s and %s", k, prev, bucket)
			seen[k.Key()] = bucket
		}
		for _, k := range res.Identical {
			record("identical", k)
		}
		for _, m := range res.Mismatches {
			record("mismatch", m.Key)
		}
		for _, k := range res.NotInA {
			record("not_in_a", k)
			assert.NotContains(t, keysA, k.Key())
			assert.Contains(t, keysB, k.Key())
		}
		for _, k := range res.NotInB {
			record("not_in_b", k)
			assert.Contains(t, keysA, k.Key())
			assert.NotContains(t, keysB, k.Key())
		}

		union := map[tabular.Key]struct{}{}
		for k := range keysA {
			union[k] = struct{}{}
		}
		for k := range keysB {
			union[k] = struct{}{}
		}
		assert.Len(t, seen, len(union))
	}
}

func TestCompare_Deterministic(t *testing.T) {
	faker := gofakeit.New(7)
	a := randomTable(t, faker, "a.csv")
	b := randomTable(t, faker, "b.csv")
	loader := &mapLoader{tables: map[string]*tabular.Table{"a.csv#": a, "b.csv#": b}}
	engine := &Engine{Loader: loader, Now: fixedNow}
	req := csvRequest("a.csv", "b.csv", "id")

	first, err := engine.Compare(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	r1, err := RenderReport(first)
	require.NoError(t, err)
	r2, err := RenderReport(second)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
