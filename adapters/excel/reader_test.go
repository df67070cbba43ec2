package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeTempCSV(t, "student_id, gender ,score_2018\ns1,female, 1500 \ns2,male,\n")

	reader := NewDataReader(Config{FilePath: path})
	table, err := reader.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"student_id", "gender", "score_2018"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1500", table.Rows[0]["score_2018"])
	assert.Equal(t, "male", table.Rows[1]["gender"])
	assert.Equal(t, "", table.Rows[1]["score_2018"])
	assert.True(t, table.HasColumn("gender"))
	assert.False(t, table.HasColumn("score_2020"))
}

func TestReadMissingFile(t *testing.T) {
	reader := NewDataReader(Config{FilePath: filepath.Join(t.TempDir(), "absent.xlsx")})
	_, err := reader.Read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReadHeaderOnlyCSV(t *testing.T) {
	path := writeTempCSV(t, "student_id,gender\n")

	reader := NewDataReader(Config{FilePath: path})
	_, err := reader.Read(context.Background())
	require.Error(t, err)
}

func TestReadCanceledContext(t *testing.T) {
	path := writeTempCSV(t, "student_id\ns1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewDataReader(Config{FilePath: path})
	_, err := reader.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileTypeByExtension(t *testing.T) {
	assert.Equal(t, "csv", NewDataReader(Config{FilePath: "data.CSV"}).fileType)
	assert.Equal(t, "xlsx", NewDataReader(Config{FilePath: "data.xlsx"}).fileType)
}

func TestReadCSVUnevenRow(t *testing.T) {
	// encoding/csv rejects records with inconsistent field counts.
	path := writeTempCSV(t, "a,b\n1,2\n3\n")

	reader := NewDataReader(Config{FilePath: path})
	_, err := reader.Read(context.Background())
	require.Error(t, err)
}
