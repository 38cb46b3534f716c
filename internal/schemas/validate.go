// Package schemas validates generated documents against embedded JSON
// Schemas. Validation is advisory: a document that parses is still usable,
// and schema findings surface as warnings rather than hard failures.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFS embed.FS

const resumeDocumentSchema = "resume_document.schema.json"

// ValidationError reports schema violations with their field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	resumeSchemaOnce sync.Once
	resumeSchema     *gojsonschema.Schema
	resumeSchemaErr  error
)

func loadResumeSchema() (*gojsonschema.Schema, error) {
	resumeSchemaOnce.Do(func() {
		raw, err := schemaFS.ReadFile(resumeDocumentSchema)
		if err != nil {
			resumeSchemaErr = fmt.Errorf("failed to read embedded schema %s: %w", resumeDocumentSchema, err)
			return
		}
		resumeSchema, resumeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if resumeSchemaErr != nil {
			resumeSchemaErr = fmt.Errorf("failed to compile schema %s: %w", resumeDocumentSchema, resumeSchemaErr)
		}
	})
	return resumeSchema, resumeSchemaErr
}

// ValidateResumeDocument checks a generated resume document against the
// embedded schema. Returns nil when valid, a *ValidationError listing every
// violation otherwise.
func ValidateResumeDocument(jsonContent []byte) error {
	schema, err := loadResumeSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(jsonContent))
	if err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	return resultError(result)
}

// ValidateJSONString validates arbitrary JSON content against an inline
// schema. Used by tests and tooling; production paths go through the
// embedded schemas.
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed during load: %w", err)
	}
	return resultError(result)
}

func resultError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
