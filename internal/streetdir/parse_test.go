package streetdir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LYYYYL/AddressValidator/internal/search"
)

func TestParseListings(t *testing.T) {
	items, err := ParseListings(strings.NewReader(resultsPage), 0)
	require.NoError(t, err)

	assert.Equal(t, []search.CategoryItem{
		{Address: "288E Jurong East Street 21 (S)605288", Category: "HDB Blocks"},
		{Address: "288E Jurong East Street 21", Category: "Multi Storey Car Park (MSCP)"},
		{Address: "", Category: "Business dealing with Hardware"},
	}, items)
}

func TestParseListingsLimit(t *testing.T) {
	items, err := ParseListings(strings.NewReader(resultsPage), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "HDB Blocks", items[0].Category)
}

func TestParseListingsEmpty(t *testing.T) {
	items, err := ParseListings(strings.NewReader(emptyPage), 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
