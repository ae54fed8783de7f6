package query

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecraft/menu-backend/internal/domain"
)

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	spec, err := Parse(url.Values{})
	require.NoError(t, err)

	assert.Empty(t, spec.Includes)
	assert.Empty(t, spec.Fields)
	assert.Zero(t, spec.Page)
	assert.Zero(t, spec.Take)
	assert.Nil(t, spec.Filter.Date)
	assert.Nil(t, spec.Filter.Order)
	assert.Equal(t, "id", spec.MatchColumn())
}

func TestParse_IncludesAndFields(t *testing.T) {
	t.Parallel()

	spec, err := Parse(url.Values{
		"include": {"translations, items", "menu"},
		"fields":  {"id,name"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"translations", "items", "menu"}, spec.Includes)
	assert.Equal(t, []string{"id", "name"}, spec.Fields)
	assert.Equal(t, spec.Includes, spec.Relations())
}

func TestParse_WildcardIncludeResolvesToNoRelations(t *testing.T) {
	t.Parallel()

	spec, err := Parse(url.Values{"include": {"translations,*"}})
	require.NoError(t, err)

	// Wildcard means "default relation set", which is empty. Legacy clients
	// depend on this.
	assert.Nil(t, spec.Relations())
}

func TestParse_Filter(t *testing.T) {
	t.Parallel()

	spec, err := Parse(url.Values{
		"filter": {`{"search":"about","field":"name","name":"main",` +
			`"date":{"from":"2024-01-02","to":"2024-02-01T15:04:05Z"},` +
			`"order":{"field":"name","way":"ASC"},` +
			`"tenantId":"6ba7b810-9dad-11d1-80b4-00c04fd430c8"}`},
	})
	require.NoError(t, err)

	assert.Equal(t, "about", spec.Filter.Search)
	assert.Equal(t, "name", spec.MatchColumn())
	assert.Equal(t, "main", spec.Filter.Name)
	require.NotNil(t, spec.Filter.TenantID)

	require.NotNil(t, spec.Filter.Date)
	assert.Equal(t, "created_at", spec.Filter.Date.Field)
	require.NotNil(t, spec.Filter.Date.From)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), spec.Filter.Date.From.UTC())
	require.NotNil(t, spec.Filter.Date.To)

	require.NotNil(t, spec.Filter.Order)
	assert.Equal(t, "name", spec.Filter.Order.Field)
	assert.Equal(t, "asc", spec.Filter.Order.Way)
}

func TestParse_UnknownFilterKeysIgnored(t *testing.T) {
	t.Parallel()

	_, err := Parse(url.Values{"filter": {`{"status":1,"locale":"en"}`}})
	assert.NoError(t, err)
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
	}{
		{"filter not json", url.Values{"filter": {`{search:`}}},
		{"bad date", url.Values{"filter": {`{"date":{"from":"02/01/2024"}}`}}},
		{"bad order way", url.Values{"filter": {`{"order":{"way":"sideways"}}`}}},
		{"bad tenant id", url.Values{"filter": {`{"tenantId":"not-a-uuid"}`}}},
		{"bad page", url.Values{"page": {"two"}}},
		{"bad take", url.Values{"take": {"10x"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.values)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedQuery), "want ErrMalformedQuery, got %v", err)
		})
	}
}

func TestParse_PaginationDefaults(t *testing.T) {
	t.Parallel()

	spec, err := Parse(url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, 2, spec.Page)
	assert.Equal(t, defaultTake, spec.Take, "paginating without take uses the default page size")

	spec, err = Parse(url.Values{"take": {"100000"}})
	require.NoError(t, err)
	assert.Equal(t, maxTake, spec.Take, "take is clamped")

	spec, err = Parse(url.Values{"page": {"-1"}, "take": {"-5"}})
	require.NoError(t, err)
	assert.Zero(t, spec.Page)
	assert.Zero(t, spec.Take)
}
