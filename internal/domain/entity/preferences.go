package entity

// Preferences are the viewer's hard discovery constraints. Every field is
// optional; a nil field means "no constraint". Preferences never influence
// scores, only which candidates are scored at all.
type Preferences struct {
	AgeMin        *int     // Minimum candidate age, inclusive.
	AgeMax        *int     // Maximum candidate age, inclusive.
	Region        *string  // Case-insensitive region label match.
	MaxDistanceKm *float64 // Radius constraint; requires coordinates on both sides.
	Religion      *string  // Case-insensitive exact match.
	Lifestyle     *string  // Case-insensitive exact match.
}

// Unconstrained reports whether no preference field is set.
func (p *Preferences) Unconstrained() bool {
	if p == nil {
		return true
	}

	return p.AgeMin == nil && p.AgeMax == nil && p.Region == nil &&
		p.MaxDistanceKm == nil && p.Religion == nil && p.Lifestyle == nil
}
