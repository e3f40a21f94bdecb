package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mirri-tools/strainsync/internal/errors"
	"github.com/mirri-tools/strainsync/internal/testutil"
)

func fixture(t *testing.T) *Workbook {
	t.Helper()
	path := testutil.WriteWorkbook(t, []testutil.Sheet{
		{
			Name: "Strains",
			Rows: [][]string{
				{"Accession number", "Risk group", "Remarks"},
				{"CECT 1", "1", "  padded  "},
				{"", "", ""},
				{"CECT 2", "2", ""},
				{"", "3", ""},
			},
		},
	})
	wb, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })
	return wb
}

func TestOpen_NotAnExcelFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip container"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAnExcelFile))
}

func TestRows_SheetMissing(t *testing.T) {
	wb := fixture(t)
	_, err := wb.Rows("Growth media", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetMissing))
	assert.False(t, wb.HasSheet("Growth media"))
	assert.True(t, wb.HasSheet("Strains"))
}

func TestRows_ValuesStrippedAndEmptyUnset(t *testing.T) {
	wb := fixture(t)
	rows, err := wb.Rows("Strains", "")
	require.NoError(t, err)
	require.Len(t, rows, 3, "fully empty rows are dropped")

	first := rows[0]
	assert.Equal(t, []string{"Accession number", "Risk group", "Remarks"}, first.Headers())
	assert.Equal(t, "CECT 1", first.Value("Accession number"))
	assert.Equal(t, "padded", first.Value("Remarks"), "whitespace is stripped")

	second := rows[1]
	assert.False(t, second.IsSet("Remarks"), "empty cells are unset")
	assert.Empty(t, second.Value("Remarks"))
	assert.True(t, second.HasColumn("Remarks"), "column still exists in the header")
	assert.False(t, second.HasColumn("Ploidy"))
}

func TestRows_MandatoryColumnSkipsSpacers(t *testing.T) {
	wb := fixture(t)
	rows, err := wb.Rows("Strains", "Accession number")
	require.NoError(t, err)
	require.Len(t, rows, 2, "row with risk group but no accession is a spacer")
	assert.Equal(t, "CECT 1", rows[0].Value("Accession number"))
	assert.Equal(t, "CECT 2", rows[1].Value("Accession number"))
}

func TestHeaders(t *testing.T) {
	wb := fixture(t)
	headers, err := wb.Headers("Strains")
	require.NoError(t, err)
	assert.Equal(t, []string{"Accession number", "Risk group", "Remarks"}, headers)
}
