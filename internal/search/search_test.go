package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPostalResult(t *testing.T) {
	rec := PostalRecord{BlockNumber: "288E", StreetName: "JURONG EAST STREET 21", PostalCode: "605288"}

	ok := NewPostalResult("605288", []PostalRecord{rec}, StatusOK)
	assert.Equal(t, StatusOK, ok.Status)
	assert.Equal(t, []string{"605288"}, ok.PostalCodes())
	assert.Equal(t, []string{"288E"}, ok.BlockNumbers())

	empty := NewPostalResult("605288", nil, StatusOK)
	assert.Equal(t, StatusNotFound, empty.Status)
	assert.Empty(t, empty.Records)

	failed := NewPostalResult("605288", []PostalRecord{rec}, StatusTimeout)
	assert.Equal(t, StatusTimeout, failed.Status)
	assert.Empty(t, failed.Records, "payload only kept for OK")
}

func TestNewCategoryResult(t *testing.T) {
	items := []CategoryItem{{Address: "288E Jurong East St 21", Category: "HDB Blocks"}}

	ok := NewCategoryResult("q", items, StatusOK)
	assert.Equal(t, StatusOK, ok.Status)
	assert.Len(t, ok.Items, 1)

	empty := NewCategoryResult("q", []CategoryItem{}, StatusOK)
	assert.Equal(t, StatusNotFound, empty.Status)

	limited := NewCategoryResult("q", items, StatusRateLimited)
	assert.Equal(t, StatusRateLimited, limited.Status)
	assert.Empty(t, limited.Items)
}

func TestTransient(t *testing.T) {
	assert.True(t, StatusRateLimited.Transient())
	assert.True(t, StatusError.Transient())
	assert.True(t, StatusTimeout.Transient())
	assert.False(t, StatusOK.Transient())
	assert.False(t, StatusNotFound.Transient())
	assert.False(t, StatusInvalidResponse.Transient())
}
