package wizyvision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedFieldsAllResolve(t *testing.T) {
	for _, name := range PredefinedFieldNames {
		field, ok := PredefinedField(name)
		require.True(t, ok, "missing template for %s", name)
		assert.NotEmpty(t, field["x-wv-type"], "%s lacks x-wv-type", name)
		assert.NotEmpty(t, field["description"], "%s lacks description", name)
	}

	_, ok := PredefinedField("nonsense")
	assert.False(t, ok)
}

func TestCustomPredefinedDocumentRequiresCoreFields(t *testing.T) {
	doc := CustomPredefinedDocument([]string{"postRef", "tags", "statusId", "bogus"})

	props := doc.Properties()
	assert.Len(t, props, 3, "unknown names must be skipped")
	assert.Contains(t, props, "postRef")
	assert.Contains(t, props, "tags")

	required, ok := doc["required"].([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"postRef", "statusId"}, required)
}

func TestPredefinedDocumentValidates(t *testing.T) {
	result := Validate(PredefinedDocument())
	assert.True(t, result.Valid, result.Message())
}

func TestExampleDocumentCoversLocationShape(t *testing.T) {
	doc := ExampleDocument()
	site, ok := doc.Properties()["site"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, string(FieldLocation), site["x-wv-type"])

	result := Validate(doc)
	assert.True(t, result.Valid, result.Message())
}
