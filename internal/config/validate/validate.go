package validate

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/setup-manifest.schema.json
var setupManifestSchema []byte

// ValidateAgainstSchema validates JSON data against the given JSON schema.
// name identifies the schema in error messages; ref optionally selects a
// sub-schema by JSON pointer.
func ValidateAgainstSchema(name string, schema []byte, data []byte, ref string) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return fmt.Errorf("failed to add schema %s: %w", name, err)
	}

	schemaRef := name
	if ref != "" {
		schemaRef = name + ref
	}

	compiled, err := compiler.Compile(schemaRef)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaRef, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid JSON document: %w", err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidateSetupManifestJSON validates a setup manifest (already converted to
// JSON) against the embedded manifest schema.
func ValidateSetupManifestJSON(data []byte) error {
	return ValidateAgainstSchema("setup-manifest.schema.json", setupManifestSchema, data, "")
}
