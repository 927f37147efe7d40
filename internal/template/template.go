// Package template loads and validates tree templates. Stored templates are
// JSON node lists validated against a schema before use; anything that fails
// validation is rejected so the caller can fall back to the built-in template.
package template

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/arborhq/arbor/pkg/models"
)

// StandardTemplateName is the name of the built-in skeleton template.
const StandardTemplateName = "standard"

// nodeListSchema validates a stored template's node list. Level is pinned to
// the skeleton range; parents must precede children, which Parse checks
// separately since ordering is not expressible in the schema.
const nodeListSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["name", "agent_type", "level", "scope"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"agent_type": {"type": "string", "minLength": 1},
			"level": {"type": "integer", "minimum": 0, "maximum": 4},
			"scope": {"type": "string"},
			"parent": {"type": "string"},
			"max_fanout": {"type": "integer", "minimum": 0},
			"max_depth_below": {"type": "integer", "minimum": 0},
			"escalation_threshold": {"type": "integer", "minimum": 0},
			"context_isolation": {"type": "boolean"},
			"history_isolation": {"type": "boolean"},
			"permissions": {"type": "array", "items": {"type": "string"}},
			"niche_definition_id": {"type": "string"},
			"required_capability": {"type": "string"}
		}
	}
}`

var compiledSchema = jsonschema.MustCompileString("template.json", nodeListSchema)

// Parse validates raw template JSON and returns the ordered node list.
func Parse(raw []byte) ([]models.TemplateNode, error) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	if err := compiledSchema.Validate(value); err != nil {
		return nil, fmt.Errorf("validate template: %w", err)
	}

	var nodes []models.TemplateNode
	if err := json.Unmarshal(raw, &nodes); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	if err := checkOrdering(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// checkOrdering verifies every parent reference names an earlier node and
// that the template has exactly one root.
func checkOrdering(nodes []models.TemplateNode) error {
	seen := make(map[string]bool, len(nodes))
	roots := 0
	for i, n := range nodes {
		if seen[n.Name] {
			return fmt.Errorf("template node %d: duplicate name %q", i, n.Name)
		}
		if n.Parent == "" {
			roots++
		} else if !seen[n.Parent] {
			return fmt.Errorf("template node %q: parent %q not defined earlier", n.Name, n.Parent)
		}
		seen[n.Name] = true
	}
	if roots != 1 {
		return fmt.Errorf("template must have exactly one root, found %d", roots)
	}
	return nil
}

// LoadFile reads a template node list from a YAML or JSON file and validates
// it through the same schema as stored templates.
func LoadFile(path string) ([]models.TemplateNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var nodes []models.TemplateNode
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, fmt.Errorf("parse yaml template: %w", err)
		}
		// Round-trip through JSON so the schema applies uniformly.
		data, err = json.Marshal(nodes)
		if err != nil {
			return nil, fmt.Errorf("encode template: %w", err)
		}
	}

	return Parse(data)
}

// Encode serializes a node list to the stored JSON form.
func Encode(nodes []models.TemplateNode) ([]byte, error) {
	data, err := json.Marshal(nodes)
	if err != nil {
		return nil, fmt.Errorf("encode template: %w", err)
	}
	return data, nil
}
