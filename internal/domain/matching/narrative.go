package matching

import "fmt"

// DefaultLowAlignmentThreshold is the axis score below which an axis is
// considered unaligned. When all three axes fall below it, the neutral
// limited-alignment narrative is used instead of a fabricated positive one.
const DefaultLowAlignmentThreshold = 40

// limitedAlignmentNarrative is the neutral fallback for pairs with no
// meaningfully aligned axis.
const limitedAlignmentNarrative = "Your purposes take different shapes across domain, archetype, and modality. Limited alignment, but differences can complement."

// Narrative derives the short explanation shown with a match. It is a pure
// function of the breakdown: identical inputs always produce identical text.
// The sentence names the strongest axis (ties resolve domain > archetype >
// modality); if every axis scores below threshold, the limited-alignment
// fallback is returned instead.
func Narrative(breakdown *Breakdown, threshold int) string {
	if threshold <= 0 {
		threshold = DefaultLowAlignmentThreshold
	}

	aligned := false
	for _, r := range breakdown.Results() {
		if r.Score >= threshold {
			aligned = true

			break
		}
	}
	if !aligned {
		return limitedAlignmentNarrative
	}

	return axisNarrative(breakdown.Strongest())
}

func axisNarrative(r AxisResult) string {
	same := r.ViewerValue == r.CandidateValue

	switch r.Axis {
	case AxisDomain:
		if same {
			return fmt.Sprintf("You are both anchored in the %s domain.", r.ViewerValue)
		}

		return fmt.Sprintf("Your life domains, %s and %s, point in the same direction.", r.ViewerValue, r.CandidateValue)
	case AxisArchetype:
		if same {
			return fmt.Sprintf("You share the %s archetype.", r.ViewerValue)
		}

		return fmt.Sprintf("Your archetypes, %s and %s, complement each other.", r.ViewerValue, r.CandidateValue)
	default:
		if same {
			return fmt.Sprintf("You both prefer a %s way of pursuing your purpose.", r.ViewerValue)
		}

		return fmt.Sprintf("Your styles, %s and %s, work well together.", r.ViewerValue, r.CandidateValue)
	}
}
