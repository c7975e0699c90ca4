package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabcli/internal/dataset"
	"tabcli/internal/errors"
)

func writeCSVFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}

func TestLoad_EmptySource(t *testing.T) {
	path := writeCSVFile(t, "")

	_, err := Load(context.Background(), path)

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindEmptySource))
}

func TestLoad_HeaderOnlyIsEmptyData(t *testing.T) {
	path := writeCSVFile(t, "name,price\n")

	_, err := Load(context.Background(), path)

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindEmptyData))
}

func TestLoad_ParseError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"ragged rows", "a,b\n1,2,3\n"},
		{"unclosed quote", "a,b\n\"oops,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSVFile(t, tt.content)

			_, err := Load(context.Background(), path)

			require.Error(t, err)
			assert.True(t, errors.IsKind(err, errors.KindParseError))
		})
	}
}

func TestLoad_WellFormed(t *testing.T) {
	path := writeCSVFile(t, "name,price\nalpha,10\nbeta,20\ngamma,30\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, table.NumRows())
	assert.Equal(t, 2, table.NumColumns())

	name, ok := table.Column("name")
	require.True(t, ok)
	assert.Equal(t, dataset.KindText, name.Kind)

	price, ok := table.Column("price")
	require.True(t, ok)
	assert.Equal(t, dataset.KindNumeric, price.Kind)
	assert.Equal(t, []float64{10, 20, 30}, price.Values())
}

func TestLoad_EmptyCellsBecomeMissing(t *testing.T) {
	path := writeCSVFile(t, "a,b\n1,x\n,y\n3,z\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	a, _ := table.Column("a")
	assert.Equal(t, dataset.KindNumeric, a.Kind)
	assert.Equal(t, 1, a.MissingCount())
	assert.Equal(t, []float64{1, 3}, a.Values())
}

func TestLoad_MixedColumnStaysText(t *testing.T) {
	path := writeCSVFile(t, "v\n12\nabc\n")

	table, err := Load(context.Background(), path)
	require.NoError(t, err)

	v, _ := table.Column("v")
	assert.Equal(t, dataset.KindText, v.Kind)
	s, ok := v.Cells[0].Text()
	require.True(t, ok)
	assert.Equal(t, "12", s)
}

func TestLoad_CancelledContext(t *testing.T) {
	path := writeCSVFile(t, "a\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, path)

	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindUnknownIO))
}
