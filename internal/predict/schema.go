package predict

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const responseSchemaURL = "schema://prediction-response.json"

// responseSchema is the minimum the service must send back.
var responseSchema = map[string]any{
	"type":     "object",
	"required": []any{"prediction"},
	"properties": map[string]any{
		"prediction": map[string]any{"type": "string"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledResponseSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(responseSchemaURL, responseSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(responseSchemaURL)
	})
	return compiled, compileErr
}

// decodeResponse validates raw against the response schema and returns the
// prediction label verbatim.
func decodeResponse(raw []byte) (string, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compiledResponseSchema()
	if err != nil {
		return "", &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return "", &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var body struct {
		Prediction string `json:"prediction"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", &ErrInvalidResponse{Content: raw, Err: err}
	}
	return body.Prediction, nil
}
