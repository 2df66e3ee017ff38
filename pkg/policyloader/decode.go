package policyloader

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/ministryofjustice/create-and-vary-a-licence-api-sub003/pkg/policy"
)

// ErrInvalidDocument is returned when a document cannot be parsed or fails
// schema validation.
var ErrInvalidDocument = errors.New("invalid policy document")

const schemaURL = "https://licences.schemas.local/policy.schema.json"

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("policyloader: schema load failed: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("policyloader: schema compile failed: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// Decode parses a single policy document. JSON is recognised by a .json
// extension; anything else is read as YAML. The document is validated
// against the embedded schema before it is decoded.
func Decode(name string, data []byte) (*policy.Policy, error) {
	schema, err := documentSchema()
	if err != nil {
		return nil, err
	}

	isJSON := strings.EqualFold(filepath.Ext(name), ".json")

	raw := data
	if !isJSON {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("policyloader: %s: parse yaml: %v: %w", name, err, ErrInvalidDocument)
		}
		if raw, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("policyloader: %s: convert yaml: %v: %w", name, err, ErrInvalidDocument)
		}
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("policyloader: %s: parse json: %v: %w", name, err, ErrInvalidDocument)
	}
	if doc, ok := instance.(map[string]any); ok {
		if v, ok := doc["version"].(json.Number); ok {
			return nil, fmt.Errorf("policyloader: %s: version %s must be a quoted string, e.g. version: \"%s\": %w", name, v, v, ErrInvalidDocument)
		}
	}
	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("policyloader: %s: schema validation failed: %v: %w", name, err, ErrInvalidDocument)
	}

	var p policy.Policy
	if isJSON {
		err = json.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("policyloader: %s: decode: %v: %w", name, err, ErrInvalidDocument)
	}
	return &p, nil
}
