// Package schema validates request documents against embedded JSON schemas.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var (
	//go:embed generate_request.schema.json
	generateRequestSchema []byte
	//go:embed section_patch.schema.json
	sectionPatchSchema []byte
)

var ErrInvalidDocument = errors.New("document does not match schema")

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %s", strings.Join(e.Details, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDocument }

type Validator struct {
	schema *gojsonschema.Schema
}

func newValidator(raw []byte) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

func mustValidator(raw []byte) *Validator {
	v, err := newValidator(raw)
	if err != nil {
		panic(err)
	}
	return v
}

var (
	GenerateRequest = mustValidator(generateRequestSchema)
	SectionPatch    = mustValidator(sectionPatchSchema)
)

// Validate checks a raw JSON document. Malformed JSON is reported as a ValidationError.
func (v *Validator) Validate(doc []byte) error {
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return &ValidationError{Details: []string{"body is not valid JSON"}}
	}
	if res.Valid() {
		return nil
	}
	details := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		details = append(details, e.String())
	}
	return &ValidationError{Details: details}
}
