package wizyvision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryFieldTypeHasAContract(t *testing.T) {
	for _, ft := range AllFieldTypes() {
		contract, ok := ContractFor(ft)
		require.True(t, ok, "no contract for %s", ft)

		declared := 0
		if contract.Type != "" {
			declared++
		}
		if len(contract.TypeIn) > 0 {
			declared++
		}
		assert.Greater(t, declared, 0, "%s constrains no JSON type", ft)
	}
}

func TestContractForUnknownType(t *testing.T) {
	_, ok := ContractFor(FieldType("Rating"))
	assert.False(t, ok)
}

func TestParseFieldTypeRoundTrip(t *testing.T) {
	for _, ft := range AllFieldTypes() {
		parsed, ok := ParseFieldType(string(ft))
		require.True(t, ok, "%s did not parse", ft)
		assert.Equal(t, ft, parsed)
	}

	// Matching is exact, not fuzzy.
	for _, bad := range []string{"toggle", "TOGGLE", "People  List", "Signature", ""} {
		_, ok := ParseFieldType(bad)
		assert.False(t, ok, "%q should not parse", bad)
	}
}

func TestFieldTypeDescriptions(t *testing.T) {
	for _, ft := range AllFieldTypes() {
		assert.NotEmpty(t, ft.Description(), "%s has no description", ft)
	}
}
