// pkg/registry/registry.go

// Package registry validates incoming generation requests against the
// resource registry: one JSON schema per resource id, loaded from a
// registry file at startup. Schemas gate the wire surface; the generation
// package itself assumes structurally valid requests.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// registryFile is the on-disk shape: a default schema plus per-resource
// overrides.
type registryFile struct {
	Default   json.RawMessage            `json:"default"`
	Resources map[string]json.RawMessage `json:"resources"`
}

// Registry holds compiled request schemas keyed by resource id.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]*gojsonschema.Schema
	fallback *gojsonschema.Schema
}

// Load reads and compiles the registry file. A missing per-resource schema
// is not an error; those resources validate against the default schema.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	return Parse(raw)
}

// Parse compiles a registry from raw JSON.
func Parse(raw []byte) (*Registry, error) {
	var file registryFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if len(file.Default) == 0 {
		return nil, fmt.Errorf("registry missing default schema")
	}

	fallback, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(file.Default))
	if err != nil {
		return nil, fmt.Errorf("compile default schema: %w", err)
	}

	r := &Registry{
		schemas:  make(map[string]*gojsonschema.Schema, len(file.Resources)),
		fallback: fallback,
	}
	for id, schemaRaw := range file.Resources {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaRaw))
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", id, err)
		}
		r.schemas[id] = schema
	}
	return r, nil
}

// Validate checks a raw request payload against the schema registered for
// its resource id. Returns nil when valid; otherwise an error listing
// every violation.
func (r *Registry) Validate(resourceID string, payload []byte) error {
	r.mu.RLock()
	schema, ok := r.schemas[resourceID]
	if !ok {
		schema = r.fallback
	}
	r.mu.RUnlock()

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Has reports whether a dedicated schema is registered for the resource.
func (r *Registry) Has(resourceID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.schemas[resourceID]
	return ok
}
