package tool

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's function signature for the LLM.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// StringParams builds an object schema whose properties are all required strings.
// Property order in the Required list follows the order of names.
func StringParams(names []string, descriptions map[string]string) *Schema {
	props := make(map[string]*Schema, len(names))
	for _, n := range names {
		props[n] = &Schema{Type: TypeString, Description: descriptions[n]}
	}
	required := make([]string, len(names))
	copy(required, names)
	return &Schema{
		Type:       TypeObject,
		Properties: props,
		Required:   required,
	}
}
