package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dagcentrum/backend/internal/models"
)

func flagsFromMask(mask int) models.SupportFlags {
	var f models.SupportFlags
	setters := []*bool{&f.Language, &f.Planning, &f.Sensory, &f.Motor, &f.Social, &f.Cognitive}
	for i, p := range setters {
		*p = mask&(1<<i) != 0
	}
	return f
}

// The base rule over the full truth table: unsuitable iff the profile and
// the requirement share at least one true dimension.
func TestEligibleTruthTable(t *testing.T) {
	for p := 0; p < 64; p++ {
		for r := 0; r < 64; r++ {
			profile := flagsFromMask(p)
			required := flagsFromMask(r)

			want := p&r == 0
			assert.Equal(t, want, Eligible(profile, required),
				"profile mask %06b, required mask %06b", p, r)
		}
	}
}

func TestEligibleNoNeedsAlwaysEligible(t *testing.T) {
	for r := 0; r < 64; r++ {
		assert.True(t, Eligible(models.SupportFlags{}, flagsFromMask(r)))
	}
}

func TestEligibleActivityWithoutDemandsAlwaysEligible(t *testing.T) {
	for p := 0; p < 64; p++ {
		assert.True(t, Eligible(flagsFromMask(p), models.SupportFlags{}))
	}
}

func TestEligibleWithMetaNilDegradesToBaseRule(t *testing.T) {
	profile := models.SupportFlags{Sensory: true, Planning: true, Cognitive: true}

	assert.True(t, EligibleWithMeta(profile, models.SupportFlags{}, nil))
	assert.False(t, EligibleWithMeta(profile, models.SupportFlags{Sensory: true}, nil))
}

func TestEligibleWithMetaIsStrictRefinement(t *testing.T) {
	meta := &models.DisabilityMeta{
		NotSuitableFor:        []string{"language"},
		StimuliIntensity:      models.StimuliIntensity{Auditory: 5},
		ComplexityLevel:       5,
		RequiredAttentionSpan: 45,
	}

	// Whatever the metadata says, a base-rule rejection stays rejected.
	profile := models.SupportFlags{Motor: true}
	required := models.SupportFlags{Motor: true}
	require.False(t, Eligible(profile, required))
	assert.False(t, EligibleWithMeta(profile, required, meta))

	// And a base-rule pass can still be refused by the metadata.
	require.True(t, Eligible(models.SupportFlags{Language: true}, models.SupportFlags{}))
	assert.False(t, EligibleWithMeta(models.SupportFlags{Language: true}, models.SupportFlags{}, meta))
}

func TestEligibleWithMetaNotSuitableFor(t *testing.T) {
	meta := &models.DisabilityMeta{NotSuitableFor: []string{"social", "motor"}}

	assert.False(t, EligibleWithMeta(models.SupportFlags{Social: true}, models.SupportFlags{}, meta))
	assert.False(t, EligibleWithMeta(models.SupportFlags{Motor: true}, models.SupportFlags{}, meta))
	assert.True(t, EligibleWithMeta(models.SupportFlags{Language: true}, models.SupportFlags{}, meta))
}

func TestEligibleWithMetaStimuliOnlyAffectsSensoryProfiles(t *testing.T) {
	loud := &models.DisabilityMeta{StimuliIntensity: models.StimuliIntensity{Auditory: 4}}
	calm := &models.DisabilityMeta{StimuliIntensity: models.StimuliIntensity{Auditory: 3, Visual: 3, Tactile: 3}}

	sensory := models.SupportFlags{Sensory: true}
	assert.False(t, EligibleWithMeta(sensory, models.SupportFlags{}, loud))
	assert.True(t, EligibleWithMeta(sensory, models.SupportFlags{}, calm))

	// A resident without the sensory flag ignores stimuli entirely.
	assert.True(t, EligibleWithMeta(models.SupportFlags{Planning: true}, models.SupportFlags{}, loud))
}

func TestEligibleWithMetaAttentionSpan(t *testing.T) {
	long := &models.DisabilityMeta{RequiredAttentionSpan: 21}
	short := &models.DisabilityMeta{RequiredAttentionSpan: 20}

	planning := models.SupportFlags{Planning: true}
	assert.False(t, EligibleWithMeta(planning, models.SupportFlags{}, long))
	assert.True(t, EligibleWithMeta(planning, models.SupportFlags{}, short))
	assert.True(t, EligibleWithMeta(models.SupportFlags{Sensory: true}, models.SupportFlags{}, long))
}

func TestEligibleWithMetaComplexity(t *testing.T) {
	hard := &models.DisabilityMeta{ComplexityLevel: 4}
	easy := &models.DisabilityMeta{ComplexityLevel: 3}

	cognitive := models.SupportFlags{Cognitive: true}
	assert.False(t, EligibleWithMeta(cognitive, models.SupportFlags{}, hard))
	assert.True(t, EligibleWithMeta(cognitive, models.SupportFlags{}, easy))
}

// A film night: loud, visually busy, long. Fine under the base rule for a
// resident who only needs sensory support, but the metadata refuses it.
func TestEligibleWithMetaFilmavondScenario(t *testing.T) {
	required := models.SupportFlags{Social: true}
	meta := &models.DisabilityMeta{
		StimuliIntensity:      models.StimuliIntensity{Visual: 5, Auditory: 4},
		RequiredAttentionSpan: 90,
	}

	resident := models.SupportFlags{Sensory: true}
	require.True(t, Eligible(resident, required))
	assert.False(t, EligibleWithMeta(resident, required, meta))
}

func TestEligibleWithMetaUnknownDimensionNamesIgnored(t *testing.T) {
	meta := &models.DisabilityMeta{NotSuitableFor: []string{"wheelchair", ""}}
	assert.True(t, EligibleWithMeta(models.SupportFlags{Motor: true}, models.SupportFlags{}, meta))
}
