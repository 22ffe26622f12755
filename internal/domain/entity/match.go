package entity

import (
	"bytes"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Match is the derived result of scoring one pair of purpose profiles.
// It is a pure function of the two profiles and the taxonomy snapshot it was
// computed against, so it can be cached and recomputed freely; matches are
// never hard-deleted, only superseded.
type Match struct {
	ViewerID           uuid.UUID // The user the match is presented to.
	CandidateID        uuid.UUID // The matched user.
	DomainScore        int       // [0,100]
	ArchetypeScore     int       // [0,100]
	ModalityScore      int       // [0,100]
	CompatibilityScore int       // [0,100], weighted sum of the axis scores.
	Narrative          string    // Short generated explanation of the match.
	IsNew              bool      // True the first time this pair is surfaced to the viewer.
	TaxonomyVersion    int64     // Snapshot version the scores were computed against.
	CreatedAt          time.Time // When this result was computed.
}

// PairKey identifies an unordered user pair. Compatibility is symmetric, so
// (A,B) and (B,A) share one key and one cached result.
type PairKey struct {
	Lo uuid.UUID
	Hi uuid.UUID
}

// NewPairKey builds the canonical key for a pair by byte-ordering the two IDs.
func NewPairKey(a, b uuid.UUID) PairKey {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return PairKey{Lo: a, Hi: b}
	}

	return PairKey{Lo: b, Hi: a}
}

// Contains reports whether the key involves the given user.
func (k PairKey) Contains(userID uuid.UUID) bool {
	return k.Lo == userID || k.Hi == userID
}

// String renders the key for logging and map indexing.
func (k PairKey) String() string {
	return fmt.Sprintf("%s:%s", k.Lo, k.Hi)
}

// ForViewer returns a copy of the match reoriented so ViewerID is the given
// user. The result is always a fresh copy, so callers can stamp IsNew on it
// without touching a cached entry. Axis scores are symmetric, so only the two
// IDs swap.
func (m *Match) ForViewer(viewerID uuid.UUID) *Match {
	reoriented := *m
	if m.ViewerID != viewerID {
		reoriented.ViewerID = m.CandidateID
		reoriented.CandidateID = m.ViewerID
	}

	return &reoriented
}
