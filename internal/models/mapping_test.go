package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMapping(t *testing.T) {
	mapping := DefaultMapping()

	assert.Equal(t, 0, mapping.HeaderRowIndex)
	assert.Equal(t, 0, mapping.DateColumnIndex)
	assert.Equal(t, 1, mapping.DescriptionColumnIndex)
	assert.Equal(t, 2, mapping.DebitColumnIndex)
	assert.Equal(t, 3, mapping.CreditColumnIndex)
	assert.Equal(t, 4, mapping.BalanceColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.ChequeNoColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.AmountColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.TypeColumnIndex)
	assert.Equal(t, "dd/MM/yyyy", mapping.DateFormat)
	assert.False(t, mapping.IsSingleAmountColumn)

	assert.NoError(t, mapping.Validate())
}

func TestUnmarshalJSONDefaultsMissingIndices(t *testing.T) {
	var mapping MappingDescriptor
	err := json.Unmarshal([]byte(`{"dateColumnIndex":3,"dateFormat":"yyyy-MM-dd"}`), &mapping)
	require.NoError(t, err)

	// Fields absent from the JSON mean "column not present", never column 0.
	assert.Equal(t, 3, mapping.DateColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.DescriptionColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.DebitColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.CreditColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.BalanceColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.ChequeNoColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.AmountColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.TypeColumnIndex)
	assert.Equal(t, 0, mapping.HeaderRowIndex)
	assert.Equal(t, "yyyy-MM-dd", mapping.DateFormat)
}

func TestUnmarshalJSONRoundTrip(t *testing.T) {
	original := DefaultMapping()
	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded MappingDescriptor
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestValidate(t *testing.T) {
	mapping := DefaultMapping()
	mapping.IsSingleAmountColumn = true
	mapping.AmountColumnIndex = ColumnAbsent
	assert.Error(t, mapping.Validate())

	mapping.AmountColumnIndex = 2
	assert.NoError(t, mapping.Validate())

	mapping = DefaultMapping()
	mapping.HeaderRowIndex = -1
	assert.Error(t, mapping.Validate())
}

func TestLoadMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.json")
	content := `{
		"headerRowIndex": 1,
		"dateColumnIndex": 0,
		"descriptionColumnIndex": 2,
		"amountColumnIndex": 3,
		"typeColumnIndex": 4,
		"dateFormat": "MM/dd/yyyy",
		"isSingleAmountColumn": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	mapping, err := LoadMapping(path)
	require.NoError(t, err)

	assert.Equal(t, 1, mapping.HeaderRowIndex)
	assert.Equal(t, 3, mapping.AmountColumnIndex)
	assert.Equal(t, ColumnAbsent, mapping.DebitColumnIndex)
	assert.True(t, mapping.IsSingleAmountColumn)
}

func TestLoadMappingRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadMapping(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{"), 0644))
	_, err = LoadMapping(badJSON)
	assert.Error(t, err)

	badInvariant := filepath.Join(dir, "invariant.json")
	require.NoError(t, os.WriteFile(badInvariant, []byte(`{"isSingleAmountColumn":true}`), 0644))
	_, err = LoadMapping(badInvariant)
	assert.Error(t, err)
}
