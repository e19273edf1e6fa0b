package lib

import (
	"context"
	"strings"

	"github.com/qri-io/jsonschema"
)

// ValidateJSON validates content against schema. Schema violations are
// reported as a single PAYLOAD_INVALID validation error listing every
// offending property; malformed JSON is returned as is.
func ValidateJSON(ctx context.Context, schema *jsonschema.Schema, content []byte) error {
	keyErrors, err := schema.ValidateBytes(ctx, content)
	if err != nil {
		return err
	}
	if len(keyErrors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(keyErrors))
	for _, keyError := range keyErrors {
		messages = append(messages, keyError.Error())
	}
	return ValidationError("PAYLOAD_INVALID", strings.Join(messages, "; "))
}
