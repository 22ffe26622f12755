package matching

import (
	"math"

	"kindred/internal/domain/entity"
	"kindred/internal/errors"
)

// MaxScore is the upper bound of every axis and aggregate score.
const MaxScore = 100

// ErrIncompleteScoreInput is returned when either side of a pair lacks a
// complete purpose profile. Callers surface this as "profile incomplete"
// rather than reporting a misleading zero score.
var ErrIncompleteScoreInput = errors.New("incomplete score input")

// AxisResult is one axis of a pair's score breakdown.
type AxisResult struct {
	Axis           Axis
	Score          int // [0,100]
	ViewerValue    string
	CandidateValue string
}

// Breakdown is the full per-axis result for one pair, in axis priority order.
type Breakdown struct {
	Domain    AxisResult
	Archetype AxisResult
	Modality  AxisResult
}

// Results returns the axis results in priority order.
func (b *Breakdown) Results() [3]AxisResult {
	return [3]AxisResult{b.Domain, b.Archetype, b.Modality}
}

// Strongest returns the highest scoring axis; exact ties resolve by axis
// priority, domain first.
func (b *Breakdown) Strongest() AxisResult {
	strongest := b.Domain
	for _, r := range [2]AxisResult{b.Archetype, b.Modality} {
		if r.Score > strongest.Score {
			strongest = r
		}
	}

	return strongest
}

// AxisScore scores a single axis between two values: round(similarity * 100).
func AxisScore(snap *Snapshot, axis Axis, viewerValue, candidateValue string) (int, error) {
	sim, err := snap.Similarity(axis, viewerValue, candidateValue)
	if err != nil {
		return 0, err
	}

	return int(math.Round(sim * MaxScore)), nil
}

// ScorePair computes the per-axis breakdown for two purpose profiles.
// Both profiles must be complete; a missing or partial profile fails with
// ErrIncompleteScoreInput, and an unregistered axis value fails with
// ErrUnknownTaxonomyValue.
func ScorePair(snap *Snapshot, viewer, candidate *entity.PurposeProfile) (*Breakdown, error) {
	if !viewer.Complete() {
		return nil, errors.Wrap(ErrIncompleteScoreInput, "viewer purpose profile incomplete")
	}
	if !candidate.Complete() {
		return nil, errors.Wrap(ErrIncompleteScoreInput, "candidate purpose profile incomplete")
	}

	breakdown := &Breakdown{}
	for _, axis := range Axes() {
		viewerValue, candidateValue := axisValues(axis, viewer, candidate)

		score, err := AxisScore(snap, axis, viewerValue, candidateValue)
		if err != nil {
			return nil, err
		}

		result := AxisResult{
			Axis:           axis,
			Score:          score,
			ViewerValue:    viewerValue,
			CandidateValue: candidateValue,
		}
		switch axis {
		case AxisDomain:
			breakdown.Domain = result
		case AxisArchetype:
			breakdown.Archetype = result
		case AxisModality:
			breakdown.Modality = result
		}
	}

	return breakdown, nil
}

// CompatibilityScore aggregates a breakdown into one bounded score:
// round(sum of axisWeight * axisScore). The sum is order-independent by
// construction, so axis evaluation order never changes the result.
func CompatibilityScore(snap *Snapshot, breakdown *Breakdown) int {
	weighted := 0.0
	for _, r := range breakdown.Results() {
		weighted += snap.AxisWeight(r.Axis) * float64(r.Score)
	}

	score := int(math.Round(weighted))
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}

	return score
}

func axisValues(axis Axis, viewer, candidate *entity.PurposeProfile) (string, string) {
	switch axis {
	case AxisArchetype:
		return viewer.Archetype, candidate.Archetype
	case AxisModality:
		return viewer.Modality, candidate.Modality
	default:
		return viewer.Domain, candidate.Domain
	}
}
