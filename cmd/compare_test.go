package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"tablediff/core/diff"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareParams(t *testing.T) {
	saved := compareFlags
	t.Cleanup(func() { compareFlags = saved })

	t.Run("Sources", func(t *testing.T) {
		compareFlags = saved
		compareFlags.key = "id"
		compareFlags.sheetA = "S1"
		compareFlags.reportPath = "out.csv"

		p := compareParams([]string{"a.xlsx", "b.xlsx"})
		assert.Equal(t, diff.ModeSources, p.Mode)
		assert.Equal(t, "a.xlsx", p.SourceA)
		assert.Equal(t, "b.xlsx", p.SourceB)
		assert.Equal(t, "S1", p.PartitionA)
		assert.True(t, p.WriteReport)
		assert.Equal(t, "out.csv", p.ReportPath)
	})

	t.Run("Partitions", func(t *testing.T) {
		compareFlags = saved
		compareFlags.key = "id"
		compareFlags.partitions = "book.xlsx"
		compareFlags.sheetA = "Jan"
		compareFlags.sheetB = "Feb"

		p := compareParams(nil)
		assert.Equal(t, diff.ModePartitions, p.Mode)
		assert.Equal(t, "book.xlsx", p.SingleSource)
		assert.Empty(t, p.SourceA)
		assert.False(t, p.WriteReport)
	})
}

func TestCompareCmd(t *testing.T) {
	saved := compareFlags
	t.Cleanup(func() { compareFlags = saved })

	dir := t.TempDir()
	a := filepath.Join(dir, "a.csv")
	b := filepath.Join(dir, "b.csv")
	require.NoError(t, os.WriteFile(a, []byte("id;v\n1;x\n2;y\n"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("id;v\n1;x\n2;z\n"), 0o644))

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"compare", a, b, "--key", "id", "--delimiter", ";", "--json", "--fail-on-diff"})
	t.Cleanup(func() { RootCmd.SetArgs(nil); RootCmd.SetOut(nil) })

	err := RootCmd.Execute()
	assert.ErrorIs(t, err, errDifferences)

	var res map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	mismatches := res["mismatches"].([]any)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "[id=2] v: 'z' vs 'y'", mismatches[0].(map[string]any)["detail"])
}
