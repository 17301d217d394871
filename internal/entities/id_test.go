package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	t.Run("accepts 24 hex characters", func(t *testing.T) {
		id, err := ParseID("65a1f0c2e4b0a1b2c3d4e5f6")
		require.NoError(t, err)
		assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", id.Hex())
		assert.False(t, id.IsZero())
	})

	for _, input := range []string{"not-an-id", "", "65a1f0c2e4b0a1b2c3d4e5f", "65a1f0c2e4b0a1b2c3d4e5fz", "65a1f0c2e4b0a1b2c3d4e5f600"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := ParseID(input)
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a.Hex(), 24)

	parsed, err := ParseID(a.String())
	require.NoError(t, err)
	assert.Equal(t, a, parsed)
}

func TestID_JSON(t *testing.T) {
	id := MustParseID("65a1f0c2e4b0a1b2c3d4e5f6")

	data, err := json.Marshal(Author{ID: id, Name: "J.K Rowling"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"65a1f0c2e4b0a1b2c3d4e5f6","name":"J.K Rowling"}`, string(data))

	var decoded Author
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &decoded))
}

func TestID_ValueScan(t *testing.T) {
	id := NewID()

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), v)

	var scanned ID
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan([]byte(id.Hex())))
	assert.Equal(t, id, scanned)

	v, err = NilID.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(42))
	assert.Error(t, scanned.Scan("garbage"))
}

func TestBookWithAuthor_JSON(t *testing.T) {
	book := BookWithAuthor{ID: MustParseID("65a1f0c2e4b0a1b2c3d4e5f6"), Title: "The Hobbit"}

	data, err := json.Marshal(book)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"65a1f0c2e4b0a1b2c3d4e5f6","title":"The Hobbit","author":null}`, string(data))
}
