package llm

import (
	"encoding/json"
	"regexp"

	"github.com/google/generative-ai-go/genai"
)

// Schema is the subset of JSON Schema used to declare the shape of a structured reply.
// It unmarshals directly from a JSON Schema document.
type Schema struct {
	Title       string             `json:"title,omitempty"`
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	MinItems    *int               `json:"minItems,omitempty"`
	MaxItems    *int               `json:"maxItems,omitempty"`
}

var schemaNamePattern = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Name returns a provider-safe identifier for the schema.
func (s *Schema) Name() string {
	if s == nil || s.Title == "" {
		return "response"
	}
	return schemaNamePattern.ReplaceAllString(s.Title, "_")
}

// Map returns the schema as a generic JSON object.
func (s *Schema) Map() (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// toGenai converts the schema into the Gemini response schema representation.
func (s *Schema) toGenai() *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if len(s.Enum) > 0 {
		out.Format = "enum"
		out.Enum = s.Enum
	}
	if s.Items != nil {
		out.Items = s.Items.toGenai()
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = prop.toGenai()
		}
	}
	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
