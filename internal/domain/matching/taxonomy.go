// Package matching implements the purpose compatibility scoring pipeline:
// taxonomy snapshots, per-axis and aggregate scoring, narrative generation,
// candidate filtering, and ranking. Everything in this package is pure and
// deterministic; all mutable state (reload, caching, persistence) lives in
// the infra layer.
package matching

import (
	"math"

	"kindred/internal/errors"
)

// Axis is one independent dimension of purpose alignment.
type Axis string

const (
	// AxisDomain is the declared life domain, e.g. "Educational".
	AxisDomain Axis = "domain"
	// AxisArchetype is the declared purpose archetype, e.g. "Builder".
	AxisArchetype Axis = "archetype"
	// AxisModality is the preferred way of pursuing the purpose, e.g. "Collaborative".
	AxisModality Axis = "modality"
)

// axisPriority is the fixed evaluation and tie-break order across axes.
var axisPriority = [3]Axis{AxisDomain, AxisArchetype, AxisModality}

// Axes returns all axes in priority order (domain > archetype > modality).
func Axes() [3]Axis {
	return axisPriority
}

var (
	// ErrUnknownTaxonomyValue is returned when an axis value is not a member
	// of the snapshot's registered set. This is a data-integrity fault, never
	// silently scored as zero.
	ErrUnknownTaxonomyValue = errors.New("unknown taxonomy value")

	// ErrUnknownAxis is returned for an axis outside domain/archetype/modality.
	ErrUnknownAxis = errors.New("unknown taxonomy axis")

	// ErrInvalidTaxonomy is returned when a taxonomy definition fails
	// validation and cannot become a snapshot.
	ErrInvalidTaxonomy = errors.New("invalid taxonomy definition")
)

// weightSumTolerance is the permitted drift of the axis weight sum from 1.0.
const weightSumTolerance = 1e-6

// AxisDefinition is the raw, declarative form of one axis as loaded from
// configuration: its value set, pairwise similarities, and aggregation weight.
// Similarity may be given sparsely and in either direction; NewSnapshot
// mirrors and completes it.
type AxisDefinition struct {
	Values     []string                      `json:"values" yaml:"values"`
	Weight     float64                       `json:"weight" yaml:"weight"`
	Similarity map[string]map[string]float64 `json:"similarity" yaml:"similarity"`
}

// Definition is the raw form of a whole taxonomy.
type Definition struct {
	Domain    AxisDefinition `json:"domain" yaml:"domain"`
	Archetype AxisDefinition `json:"archetype" yaml:"archetype"`
	Modality  AxisDefinition `json:"modality" yaml:"modality"`
}

func (d *Definition) axis(a Axis) *AxisDefinition {
	switch a {
	case AxisDomain:
		return &d.Domain
	case AxisArchetype:
		return &d.Archetype
	case AxisModality:
		return &d.Modality
	}

	return nil
}

// Snapshot is one immutable, versioned taxonomy: registered values, a full
// symmetric similarity matrix per axis, and axis weights summing to 1.
// Snapshots are built once by NewSnapshot and never mutated; reloads produce
// a new Snapshot with a higher version.
type Snapshot struct {
	version  int64
	checksum string
	values   map[Axis][]string
	member   map[Axis]map[string]struct{}
	sim      map[Axis]map[string]map[string]float64
	weights  map[Axis]float64
}

// NewSnapshot validates a definition and freezes it into a snapshot.
// Validation rejects: empty value sets, matrix entries outside [0,1],
// matrix keys not in the value set, contradictory asymmetric entries,
// non-1.0 self similarity, and axis weights not summing to 1.
func NewSnapshot(version int64, checksum string, def *Definition) (*Snapshot, error) {
	snap := &Snapshot{
		version:  version,
		checksum: checksum,
		values:   make(map[Axis][]string, len(axisPriority)),
		member:   make(map[Axis]map[string]struct{}, len(axisPriority)),
		sim:      make(map[Axis]map[string]map[string]float64, len(axisPriority)),
		weights:  make(map[Axis]float64, len(axisPriority)),
	}

	weightSum := 0.0
	for _, axis := range axisPriority {
		axisDef := def.axis(axis)
		if len(axisDef.Values) == 0 {
			return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s has no registered values", axis)
		}

		member := make(map[string]struct{}, len(axisDef.Values))
		for _, v := range axisDef.Values {
			if v == "" {
				return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s contains an empty value", axis)
			}
			if _, dup := member[v]; dup {
				return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s declares %q twice", axis, v)
			}
			member[v] = struct{}{}
		}

		matrix, err := buildMatrix(axis, axisDef, member)
		if err != nil {
			return nil, err
		}

		if axisDef.Weight < 0 || axisDef.Weight > 1 {
			return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s weight %v outside [0,1]", axis, axisDef.Weight)
		}
		weightSum += axisDef.Weight

		snap.values[axis] = append([]string(nil), axisDef.Values...)
		snap.member[axis] = member
		snap.sim[axis] = matrix
		snap.weights[axis] = axisDef.Weight
	}

	if math.Abs(weightSum-1) > weightSumTolerance {
		return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis weights sum to %v, want 1", weightSum)
	}

	return snap, nil
}

// buildMatrix completes a sparse similarity declaration into a full symmetric
// matrix: self similarity is forced to 1, omitted pairs default to 0, and a
// pair declared in both directions must agree.
func buildMatrix(axis Axis, def *AxisDefinition, member map[string]struct{}) (map[string]map[string]float64, error) {
	matrix := make(map[string]map[string]float64, len(def.Values))
	for _, v := range def.Values {
		row := make(map[string]float64, len(def.Values))
		for _, w := range def.Values {
			row[w] = 0
		}
		row[v] = 1
		matrix[v] = row
	}

	for from, row := range def.Similarity {
		if _, ok := member[from]; !ok {
			return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s similarity references unregistered value %q", axis, from)
		}
		for to, score := range row {
			if _, ok := member[to]; !ok {
				return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s similarity references unregistered value %q", axis, to)
			}
			if score < 0 || score > 1 {
				return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s similarity %q/%q is %v, outside [0,1]", axis, from, to, score)
			}
			if from == to && score != 1 {
				return nil, errors.Wrapf(ErrInvalidTaxonomy, "axis %s self similarity of %q must be 1", axis, from)
			}

			// Mirror, but reject a contradictory reverse declaration.
			if reverse, declared := def.Similarity[to][from]; declared && reverse != score {
				return nil, errors.Wrapf(ErrInvalidTaxonomy,
					"axis %s similarity %q/%q declared asymmetric (%v vs %v)", axis, from, to, score, reverse)
			}
			matrix[from][to] = score
			matrix[to][from] = score
		}
	}

	return matrix, nil
}

// Version returns the monotonically increasing snapshot version.
func (s *Snapshot) Version() int64 {
	return s.version
}

// Checksum returns the fingerprint of the source the snapshot was built from,
// empty for the embedded defaults.
func (s *Snapshot) Checksum() string {
	return s.checksum
}

// Values returns the registered value set for an axis, in declaration order.
func (s *Snapshot) Values(axis Axis) []string {
	return s.values[axis]
}

// AxisWeight returns the aggregation weight of an axis. Weights across the
// three axes sum to 1.
func (s *Snapshot) AxisWeight(axis Axis) float64 {
	return s.weights[axis]
}

// Similarity returns the pairwise similarity of two values on an axis, in
// [0,1]. The matrix is symmetric and identical values always score 1.
func (s *Snapshot) Similarity(axis Axis, a, b string) (float64, error) {
	member, ok := s.member[axis]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownAxis, "axis %q", axis)
	}
	if _, ok := member[a]; !ok {
		return 0, errors.Wrapf(ErrUnknownTaxonomyValue, "axis %s value %q", axis, a)
	}
	if _, ok := member[b]; !ok {
		return 0, errors.Wrapf(ErrUnknownTaxonomyValue, "axis %s value %q", axis, b)
	}

	return s.sim[axis][a][b], nil
}
