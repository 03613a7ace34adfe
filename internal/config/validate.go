package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema constrains the loaded configuration before a run starts.
// Invalid configuration is a fatal error: no rows are produced.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "ai": {
      "type": "object",
      "properties": {
        "platform": {"enum": ["naive", "openai", "vertex"]},
        "temperature": {"type": "number", "minimum": 0, "maximum": 2},
        "max_retries": {"type": "integer", "minimum": 0, "maximum": 10}
      },
      "required": ["platform"]
    },
    "document": {
      "type": "object",
      "properties": {
        "acknowledgment_footnotes": {"type": "integer", "minimum": 0}
      }
    },
    "output": {
      "type": "object",
      "properties": {
        "folder": {"type": "string", "minLength": 1}
      }
    },
    "pipeline": {
      "type": "object",
      "properties": {
        "workers": {"type": "integer", "minimum": 1, "maximum": 64}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("config.schema.json", configSchema)

// Validate checks structural constraints on the configuration.
func Validate(cfg *Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse config for validation: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
