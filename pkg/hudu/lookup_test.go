package hudu

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTableResolvesBothWays(t *testing.T) {
	t.Parallel()

	table := NewLookupTable([]LookupEntry{
		{ID: 1, Name: "Acme"},
		{ID: 2, Name: "Globex"},
	})

	id, err := table.ID("Acme")
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	name, err := table.Name(2)
	require.NoError(t, err)
	assert.Equal(t, "Globex", name)

	assert.Equal(t, 2, table.Len())
}

func TestLookupTableMisses(t *testing.T) {
	t.Parallel()

	table := NewLookupTable([]LookupEntry{{ID: 1, Name: "Acme"}})

	_, err := table.ID("Initech")
	assert.True(t, errors.Is(err, ErrLookupNameNotFound))

	_, err = table.Name(99)
	assert.True(t, errors.Is(err, ErrLookupIDNotFound))
}

func TestLookupTableLaterEntriesWin(t *testing.T) {
	t.Parallel()

	table := NewLookupTable([]LookupEntry{
		{ID: 1, Name: "Acme"},
		{ID: 2, Name: "Acme"},
	})

	id, err := table.ID("Acme")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestLookupTableRoundTripsThroughJSON(t *testing.T) {
	t.Parallel()

	table := NewLookupTable([]LookupEntry{
		{ID: 1, Name: "Acme"},
		{ID: 2, Name: "Globex"},
	})

	data, err := json.Marshal(table)
	require.NoError(t, err)

	var restored LookupTable
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, table.Len(), restored.Len())

	id, err := restored.ID("Globex")
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}
