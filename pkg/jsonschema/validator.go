// Package jsonschema validates JSON documents against JSON Schema
// definitions, backed by santhosh-tekuri/jsonschema.
package jsonschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidationErrors aggregates individual validation failures.
type ValidationErrors []error

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// Validate checks a JSON document against a schema. It returns false with a
// nil error when the document is well-formed but fails the schema; an error
// is returned only for malformed schemas or documents.
func Validate(document, schema string) (bool, error) {
	ok, verrs := ValidateWithErrors(document, schema)
	if ok {
		return true, nil
	}
	// Distinguish compile/parse failures from schema violations.
	for _, err := range verrs {
		if _, isViolation := err.(violation); !isViolation {
			return false, err
		}
	}
	return false, nil
}

// violation marks an error as a schema violation rather than a parse failure.
type violation struct{ error }

// ValidateWithErrors checks a JSON document against a schema and returns
// every validation failure.
func ValidateWithErrors(document, schema string) (bool, ValidationErrors) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schema)); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid schema: %w", err)}
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid schema: %w", err)}
	}

	var data interface{}
	if err := json.Unmarshal([]byte(document), &data); err != nil {
		return false, ValidationErrors{fmt.Errorf("invalid JSON: %w", err)}
	}

	if err := compiled.Validate(data); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			return false, flatten(verr)
		}
		return false, ValidationErrors{err}
	}
	return true, nil
}

// flatten walks the validation error tree into a flat list.
func flatten(err *jsonschema.ValidationError) ValidationErrors {
	var errors ValidationErrors
	if err.Message != "" {
		errors = append(errors, violation{fmt.Errorf("validation error at %s: %s", err.InstanceLocation, err.Message)})
	}
	for _, cause := range err.Causes {
		errors = append(errors, flatten(cause)...)
	}
	return errors
}
