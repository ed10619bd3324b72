package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate checks an assembled document against the OpenAPI 3.0 rules
// implemented by kin-openapi: required fields, resolvable $refs, path
// parameters declared for every template variable. Assemble never calls
// it; malformed fragments are only reported here.
func Validate(ctx context.Context, doc *Document) error {
	data, err := MarshalJSON(doc)
	if err != nil {
		return err
	}

	loader := openapi3.NewLoader()
	t, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("openapi: load document: %w", err)
	}

	if err := t.Validate(ctx); err != nil {
		return fmt.Errorf("openapi: invalid document: %w", err)
	}

	return nil
}
