package models

// SupportDimensions lists the six support dimensions in canonical order.
var SupportDimensions = []string{"language", "planning", "sensory", "motor", "social", "cognitive"}

// SupportFlags is the six-dimension support vector. On a resident profile a
// true flag means "needs support here"; on an activity it means "demands
// support here".
type SupportFlags struct {
	Language  bool `gorm:"default:false" json:"language"`
	Planning  bool `gorm:"default:false" json:"planning"`
	Sensory   bool `gorm:"default:false" json:"sensory"`
	Motor     bool `gorm:"default:false" json:"motor"`
	Social    bool `gorm:"default:false" json:"social"`
	Cognitive bool `gorm:"default:false" json:"cognitive"`
}

// Get returns the flag for a dimension name; unknown names are false.
func (f SupportFlags) Get(dim string) bool {
	switch dim {
	case "language":
		return f.Language
	case "planning":
		return f.Planning
	case "sensory":
		return f.Sensory
	case "motor":
		return f.Motor
	case "social":
		return f.Social
	case "cognitive":
		return f.Cognitive
	}
	return false
}

// StimuliIntensity grades sensory load on a 1-5 scale per channel.
// Zero means unspecified.
type StimuliIntensity struct {
	Visual   int `json:"visual,omitempty"`
	Auditory int `json:"auditory,omitempty"`
	Tactile  int `json:"tactile,omitempty"`
}

// DisabilityMeta is the optional richer suitability metadata carried by a
// template, stored as a JSONB blob. All fields are optional; zero values
// impose no constraint.
type DisabilityMeta struct {
	NotSuitableFor        []string         `json:"not_suitable_for,omitempty"`
	RecommendedFor        []string         `json:"recommended_for,omitempty"`
	StimuliIntensity      StimuliIntensity `json:"stimuli_intensity,omitempty"`
	ComplexityLevel       int              `json:"complexity_level,omitempty"`
	RequiredAttentionSpan int              `json:"required_attention_span,omitempty"`
}
