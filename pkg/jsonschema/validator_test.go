package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const userSchema = `{
	"type": "object",
	"required": ["name", "id"],
	"properties": {
		"name": {"type": "string"},
		"id": {"type": "integer"}
	}
}`

func TestValidate(t *testing.T) {
	ok, err := Validate(`{"name": "ada", "id": 1}`, userSchema)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = Validate(`{"name": "ada"}`, userSchema)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestValidate_MalformedInput(t *testing.T) {
	_, err := Validate(`{not json`, userSchema)
	assert.ErrorContains(t, err, "invalid JSON")

	_, err = Validate(`{}`, `{not a schema`)
	assert.ErrorContains(t, err, "invalid schema")
}

func TestValidateWithErrors(t *testing.T) {
	ok, verrs := ValidateWithErrors(`{"name": 7}`, userSchema)
	assert.False(t, ok)
	assert.NotEmpty(t, verrs)
	assert.Contains(t, verrs.Error(), "validation error at")
}
