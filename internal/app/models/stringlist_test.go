package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	value, err := StringList{"go", "sql"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["go","sql"]`, value)

	// nil encodes as an empty list, never SQL NULL
	value, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

func TestStringListScan(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(`["go","sql"]`))
	assert.Equal(t, StringList{"go", "sql"}, list)

	require.NoError(t, list.Scan([]byte(`["docker"]`)))
	assert.Equal(t, StringList{"docker"}, list)

	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)

	assert.Error(t, list.Scan(42))
}

func TestStringListEqual(t *testing.T) {
	assert.True(t, StringList{"go", "sql"}.Equal(StringList{"go", "sql"}))
	assert.True(t, StringList(nil).Equal(StringList{}))
	assert.False(t, StringList{"go"}.Equal(StringList{"sql"}))
	assert.False(t, StringList{"go"}.Equal(StringList{"go", "sql"}))
}

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0, ClampProgress(-5))
	assert.Equal(t, 0, ClampProgress(0))
	assert.Equal(t, 42, ClampProgress(42))
	assert.Equal(t, 100, ClampProgress(100))
	assert.Equal(t, 100, ClampProgress(150))
}
