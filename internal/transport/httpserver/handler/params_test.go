package handler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageParams(t *testing.T) {
	params, err := parsePageParams(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.Size)

	params, err = parsePageParams(url.Values{"page": {"3"}, "size": {"25"}})
	require.NoError(t, err)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Size)

	// Oversized pages are clamped, not rejected.
	params, err = parsePageParams(url.Values{"size": {"500"}})
	require.NoError(t, err)
	assert.Equal(t, maxPageSize, params.Size)

	for _, query := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"page": {"abc"}},
		{"size": {"0"}},
		{"size": {"x"}},
	} {
		_, err := parsePageParams(query)
		assert.Error(t, err, "query %v", query)
	}
}

func TestParseUUIDParam(t *testing.T) {
	id, ok := parseUUIDParam("1f0a7c44-6d2b-4b5e-9c3d-aa00bb11cc01")
	assert.True(t, ok)
	assert.Equal(t, "1f0a7c44-6d2b-4b5e-9c3d-aa00bb11cc01", id)

	_, ok = parseUUIDParam("not-a-uuid")
	assert.False(t, ok)

	_, ok = parseUUIDParam("")
	assert.False(t, ok)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), totalPages(0, 10))
	assert.Equal(t, int64(1), totalPages(1, 10))
	assert.Equal(t, int64(1), totalPages(10, 10))
	assert.Equal(t, int64(2), totalPages(11, 10))
	assert.Equal(t, int64(0), totalPages(5, 0))
}
