package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// configSchema is the structural contract for config.yaml: every provider
// needs at least one (key, title) section, overrides are 1-based, and the
// layout hint is one of the known modes.
const configSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "providers": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["sections"],
        "properties": {
          "sections": {
            "type": "array",
            "minItems": 1,
            "items": {
              "type": "object",
              "required": ["key", "title"],
              "properties": {
                "key": {"type": "string", "minLength": 1},
                "title": {"type": "string", "minLength": 1}
              }
            }
          },
          "overrides": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["title", "occurrence"],
              "properties": {
                "title": {"type": "string", "minLength": 1},
                "occurrence": {"type": "integer", "minimum": 1}
              }
            }
          },
          "layout": {
            "type": "string",
            "enum": ["", "auto", "single_sided", "double_sided"]
          }
        }
      }
    },
    "server": {
      "type": "object",
      "properties": {
        "host": {"type": "string"},
        "port": {"type": "string"}
      }
    },
    "storage": {
      "type": "object",
      "properties": {
        "path": {"type": "string"}
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Validate checks a Config against the embedded JSON schema.
func Validate(cfg *Config) error {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("config.json", strings.NewReader(configSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to load config schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("config.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	// Round-trip through JSON so the schema sees the wire representation.
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode config for validation: %w", err)
	}

	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}
	return nil
}
