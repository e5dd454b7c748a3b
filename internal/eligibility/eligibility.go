// Package eligibility decides whether an activity is suitable for a
// resident. All functions are pure and total: they never touch storage and
// never fail, treating absent metadata as "no constraint".
package eligibility

import (
	"github.com/dagcentrum/backend/internal/models"
)

// Stimuli above this level exclude residents flagged for sensory support.
const maxStimuliLevel = 3

// Attention spans above this many minutes exclude residents flagged for
// planning support.
const maxAttentionSpanMin = 20

// Complexity above this level excludes residents flagged for cognitive
// support.
const maxComplexityLevel = 3

// Eligible applies the base rule: an activity is unsuitable iff it demands
// support on any dimension where the resident needs support. The activity is
// assumed not to provide that support itself.
func Eligible(profile, required models.SupportFlags) bool {
	for _, dim := range models.SupportDimensions {
		if profile.Get(dim) && required.Get(dim) {
			return false
		}
	}
	return true
}

// EligibleWithMeta applies the extended rule: the base rule plus the richer
// disability metadata checks. It is a strict refinement of Eligible; it can
// only reject more, never less. A nil meta degrades to the base rule.
func EligibleWithMeta(profile, required models.SupportFlags, meta *models.DisabilityMeta) bool {
	if !Eligible(profile, required) {
		return false
	}
	if meta == nil {
		return true
	}

	for _, dim := range meta.NotSuitableFor {
		if profile.Get(dim) {
			return false
		}
	}

	if profile.Sensory {
		s := meta.StimuliIntensity
		if s.Visual > maxStimuliLevel || s.Auditory > maxStimuliLevel || s.Tactile > maxStimuliLevel {
			return false
		}
	}

	if profile.Planning && meta.RequiredAttentionSpan > maxAttentionSpanMin {
		return false
	}

	if profile.Cognitive && meta.ComplexityLevel > maxComplexityLevel {
		return false
	}

	return true
}
