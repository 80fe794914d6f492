package persona

// Persona captures the assistant identity interpolated into every prompt.
type Persona struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Company    string   `json:"company"`
	Role       string   `json:"role"`
	Guidelines []string `json:"guidelines,omitempty"`
}

// Store exposes persona retrieval for the orchestrator and handlers.
type Store interface {
	Default() Persona
}

// MemoryStore implements Store with an in-memory slice. The first entry is the
// default persona.
type MemoryStore struct {
	items []Persona
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied personas.
func NewMemoryStore(items []Persona) *MemoryStore {
	return &MemoryStore{items: append([]Persona(nil), items...)}
}

// Default returns the persona used when no explicit id is given.
func (s *MemoryStore) Default() Persona {
	if len(s.items) == 0 {
		return Persona{}
	}
	return s.items[0]
}

// FindByID looks up a persona by identifier.
func (s *MemoryStore) FindByID(id string) (Persona, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Persona{}, false
}

// Seed provides the default customer-service persona.
func Seed() []Persona {
	return []Persona{
		{
			ID:      "budger",
			Name:    "Budger",
			Company: "Cogent Infotech Corporation",
			Role:    "advanced AI customer service agent",
			Guidelines: []string{
				"Provide accurate, helpful responses based on the context provided",
				"Be conversational and friendly while maintaining professionalism",
				"If you don't know something, admit it rather than guessing",
				"Keep responses concise but comprehensive",
				"Use the conversation history to maintain context",
			},
		},
	}
}
