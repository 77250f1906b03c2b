package format

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed ctrf.schema.json
var ctrfSchemaJSON []byte

var (
	ctrfSchemaOnce sync.Once
	ctrfSchema     *jsonschema.Schema
	ctrfSchemaErr  error
)

// ValidateCTRF checks a raw CTRF-marked document against the embedded JSON
// Schema. Only used in strict mode; lenient loading relies on the decoders'
// per-field errors instead.
func ValidateCTRF(raw []byte) error {
	ctrfSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		ctrfSchema, ctrfSchemaErr = compiler.Compile(ctrfSchemaJSON)
	})
	if ctrfSchemaErr != nil {
		return fmt.Errorf("compile CTRF schema: %w", ctrfSchemaErr)
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("CTRF schema validation failed: invalid JSON: %w", err)
	}
	res := ctrfSchema.Validate(doc)
	if res.IsValid() {
		return nil
	}
	return fmt.Errorf("CTRF schema validation failed: %v", res.Errors)
}
