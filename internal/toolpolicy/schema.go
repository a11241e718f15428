package toolpolicy

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaRegistry maps tool_name → compiled JSON Schema (spec §4.5(c)).
type SchemaRegistry struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
}

// NewSchemaRegistry returns a registry pre-loaded with the built-in schemas
// for bash, fileRead, fileWrite, and browserNavigate.
func NewSchemaRegistry() *SchemaRegistry {
	r := &SchemaRegistry{schemas: map[string]*jsonschema.Schema{}}
	for name, raw := range builtinSchemas {
		if err := r.Register(name, raw); err != nil {
			panic(fmt.Sprintf("toolpolicy: built-in schema %q failed to compile: %v", name, err))
		}
	}
	return r
}

// Register compiles and stores a schema (as a Go map[string]any, the shape
// callers load from config) under toolName, replacing any prior schema.
func (r *SchemaRegistry) Register(toolName string, schema map[string]any) error {
	schemaBytes, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("invalid schema for %s: %w", toolName, err)
	}
	var schemaObj any
	if err := json.Unmarshal(schemaBytes, &schemaObj); err != nil {
		return fmt.Errorf("schema unmarshal error for %s: %w", toolName, err)
	}

	resourceName := toolName + ".schema.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(resourceName, schemaObj); err != nil {
		return fmt.Errorf("schema compile error for %s: %w", toolName, err)
	}
	sch, err := c.Compile(resourceName)
	if err != nil {
		return fmt.Errorf("schema compile error for %s: %w", toolName, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[toolName] = sch
	return nil
}

// ValidationResult is the outcome of validating one tool call's arguments.
type ValidationResult struct {
	Valid    bool
	Warnings []string
	Errors   []string
}

// Validate checks argsJSON against the schema registered for toolName.
// Unregistered tools pass with a warning (spec §4.5(c)).
func (r *SchemaRegistry) Validate(toolName, argsJSON string) ValidationResult {
	r.mu.RLock()
	sch, ok := r.schemas[toolName]
	r.mu.RUnlock()

	if !ok {
		return ValidationResult{Valid: true, Warnings: []string{fmt.Sprintf("no schema registered for tool %q", toolName)}}
	}

	var args any
	if err := json.Unmarshal([]byte(argsJSON), &args); err != nil {
		return ValidationResult{Valid: false, Errors: []string{fmt.Sprintf("arguments are not valid JSON: %v", err)}}
	}

	if err := sch.Validate(args); err != nil {
		return ValidationResult{Valid: false, Errors: []string{fmt.Sprintf("schema validation failed: %v", err)}}
	}
	return ValidationResult{Valid: true}
}

var builtinSchemas = map[string]map[string]any{
	"bash": {
		"type":                 "object",
		"required":             []any{"command"},
		"additionalProperties": false,
		"properties": map[string]any{
			"command": map[string]any{"type": "string", "minLength": 1, "maxLength": 8192},
			"timeout_ms": map[string]any{"type": "number", "minimum": 0, "maximum": 600000},
		},
	},
	"fileRead": {
		"type":                 "object",
		"required":             []any{"path"},
		"additionalProperties": false,
		"properties": map[string]any{
			"path":   map[string]any{"type": "string", "minLength": 1},
			"offset": map[string]any{"type": "number", "minimum": 0},
			"limit":  map[string]any{"type": "number", "minimum": 1},
		},
	},
	"fileWrite": {
		"type":                 "object",
		"required":             []any{"path", "content"},
		"additionalProperties": false,
		"properties": map[string]any{
			"path":    map[string]any{"type": "string", "minLength": 1},
			"content": map[string]any{"type": "string"},
			"mode":    map[string]any{"type": "string", "enum": []any{"overwrite", "append"}},
		},
	},
	"browserNavigate": {
		"type":                 "object",
		"required":             []any{"url"},
		"additionalProperties": false,
		"properties": map[string]any{
			"url":              map[string]any{"type": "string", "pattern": "^(https?|about)://?.*"},
			"wait_for_load": map[string]any{"type": "boolean"},
		},
	},
}
