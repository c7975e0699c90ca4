package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabcli/internal/dataset"
)

func mustTable(t *testing.T, cols ...dataset.Column) *dataset.Table {
	t.Helper()
	table, err := dataset.New(cols...)
	require.NoError(t, err)
	return table
}

func TestClean_RemovesTotalRows(t *testing.T) {
	table := mustTable(t,
		dataset.Column{Name: "item", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("widget"),
			dataset.Text("Total: 500"),
			dataset.Text("gadget"),
			dataset.Text("subTOTAL"),
		}},
		dataset.Column{Name: "qty", Kind: dataset.KindNumeric, Cells: []dataset.Cell{
			dataset.Number(1), dataset.Number(500), dataset.Number(2), dataset.Number(3),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)

	assert.Equal(t, 2, out.NumRows())
	item, _ := out.Column("item")
	assert.Equal(t, "widget", item.Cells[0].String())
	assert.Equal(t, "gadget", item.Cells[1].String())
}

func TestClean_MarkerMatchesNumericCellString(t *testing.T) {
	// only text cells can contain the marker, so numeric-only rows survive
	table := mustTable(t,
		dataset.Column{Name: "v", Kind: dataset.KindNumeric, Cells: []dataset.Cell{
			dataset.Number(1), dataset.Number(2),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumRows())
}

func TestClean_TrimsTextCells(t *testing.T) {
	table := mustTable(t,
		dataset.Column{Name: "name", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("  alpha  "), dataset.Text("beta\t"),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)

	name, _ := out.Column("name")
	assert.Equal(t, "alpha", name.Cells[0].String())
	assert.Equal(t, "beta", name.Cells[1].String())
}

func TestClean_CurrencyCoercion(t *testing.T) {
	table := mustTable(t,
		dataset.Column{Name: "price", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("$1,200"), dataset.Text("$3,400"),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)

	price, _ := out.Column("price")
	assert.Equal(t, dataset.KindNumeric, price.Kind)
	assert.Equal(t, []float64{1200, 3400}, price.Values())
}

func TestClean_PartialParseStaysText(t *testing.T) {
	// one unparsable cell keeps the whole column text; stripped strings
	// are retained
	table := mustTable(t,
		dataset.Column{Name: "price", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("$1,200"), dataset.Text("abc"),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)

	price, _ := out.Column("price")
	assert.Equal(t, dataset.KindText, price.Kind)
	assert.Equal(t, "1200", price.Cells[0].String())
	assert.Equal(t, "abc", price.Cells[1].String())
}

func TestClean_EmptyAfterStripBecomesMissing(t *testing.T) {
	table := mustTable(t,
		dataset.Column{Name: "price", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("$,"), dataset.Text("$5"),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)

	price, _ := out.Column("price")
	assert.Equal(t, dataset.KindNumeric, price.Kind)
	assert.True(t, price.Cells[0].IsMissing())
	assert.Equal(t, []float64{5}, price.Values())
}

func TestClean_Deduplicates(t *testing.T) {
	table := mustTable(t,
		dataset.Column{Name: "name", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("a"), dataset.Text("b"), dataset.Text("a"), dataset.Text("c"),
		}},
		dataset.Column{Name: "v", Kind: dataset.KindNumeric, Cells: []dataset.Cell{
			dataset.Number(1), dataset.Number(2), dataset.Number(1), dataset.Number(3),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)

	assert.Equal(t, 3, out.NumRows())
	name, _ := out.Column("name")
	assert.Equal(t, "a", name.Cells[0].String())
	assert.Equal(t, "b", name.Cells[1].String())
	assert.Equal(t, "c", name.Cells[2].String())
}

func TestClean_DedupDistinguishesMissingFromEmpty(t *testing.T) {
	// rows [missing] and [""] look alike as strings but are distinct
	table := mustTable(t,
		dataset.Column{Name: "v", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Missing(), dataset.Text(""),
		}},
	)

	out := deduplicateRows(table)
	assert.Equal(t, 2, out.NumRows())
}

func TestClean_OrderOfStepsMatterForDedup(t *testing.T) {
	// rows differing only by whitespace and currency formatting collapse
	// after trim + coercion run first
	table := mustTable(t,
		dataset.Column{Name: "price", Kind: dataset.KindText, Cells: []dataset.Cell{
			dataset.Text("$1,200"), dataset.Text(" 1200 "),
		}},
	)

	out, err := Clean(table)
	require.NoError(t, err)
	assert.Equal(t, 1, out.NumRows())
}
