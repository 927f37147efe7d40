package models

// NicheAgentDefinition is a catalog entry describing a specialist worker type
// available for deep-branch spawning. The catalog is read-only to the engine.
type NicheAgentDefinition struct {
	// ID is the unique identifier for this definition.
	ID string `json:"id"`
	// Name is the specialist's display name.
	Name string `json:"name"`
	// Level is the tree level this specialist lives at (5-9).
	Level int `json:"level"`
	// Specialty is the keyword describing what the specialist does.
	Specialty string `json:"specialty"`
	// Area is the broader area the specialist belongs to, used to pick its
	// parent during multi-level spawning.
	Area string `json:"area"`
	// Domain is the top-level domain grouping (frontend, backend, ...).
	Domain string `json:"domain"`
	// InputContract describes what the specialist expects to receive.
	InputContract string `json:"input_contract,omitempty"`
	// OutputContract describes what the specialist promises to produce.
	OutputContract string `json:"output_contract,omitempty"`
}
