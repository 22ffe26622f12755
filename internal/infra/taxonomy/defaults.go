package taxonomy

import "kindred/internal/domain/matching"

// defaultDefinition is the embedded taxonomy used when no file is configured.
// Similarity is declared sparsely (upper triangle); the snapshot builder
// mirrors it and fills the diagonal.
func defaultDefinition() *matching.Definition {
	return &matching.Definition{
		Domain: matching.AxisDefinition{
			Weight: 0.5,
			Values: []string{
				"Educational", "Creative", "Entrepreneurial",
				"Humanitarian", "Spiritual", "Environmental",
			},
			Similarity: map[string]map[string]float64{
				"Educational": {
					"Creative":        0.6,
					"Entrepreneurial": 0.5,
					"Humanitarian":    0.55,
					"Spiritual":       0.4,
					"Environmental":   0.45,
				},
				"Creative": {
					"Entrepreneurial": 0.6,
					"Humanitarian":    0.45,
					"Spiritual":       0.5,
					"Environmental":   0.4,
				},
				"Entrepreneurial": {
					"Humanitarian":  0.3,
					"Spiritual":     0.2,
					"Environmental": 0.35,
				},
				"Humanitarian": {
					"Spiritual":     0.65,
					"Environmental": 0.7,
				},
				"Spiritual": {
					"Environmental": 0.55,
				},
			},
		},
		Archetype: matching.AxisDefinition{
			Weight: 0.3,
			Values: []string{
				"Builder", "Mentor", "Explorer",
				"Advocate", "Visionary", "Connector",
			},
			Similarity: map[string]map[string]float64{
				"Builder": {
					"Mentor":    0.4,
					"Explorer":  0.5,
					"Advocate":  0.35,
					"Visionary": 0.6,
					"Connector": 0.3,
				},
				"Mentor": {
					"Explorer":  0.35,
					"Advocate":  0.6,
					"Visionary": 0.45,
					"Connector": 0.65,
				},
				"Explorer": {
					"Advocate":  0.3,
					"Visionary": 0.65,
					"Connector": 0.4,
				},
				"Advocate": {
					"Visionary": 0.5,
					"Connector": 0.55,
				},
				"Visionary": {
					"Connector": 0.45,
				},
			},
		},
		Modality: matching.AxisDefinition{
			Weight: 0.2,
			Values: []string{
				"Collaborative", "Independent", "Supportive", "Leading",
			},
			Similarity: map[string]map[string]float64{
				"Collaborative": {
					"Independent": 0.2,
					"Supportive":  0.7,
					"Leading":     0.5,
				},
				"Independent": {
					"Supportive": 0.3,
					"Leading":    0.4,
				},
				"Supportive": {
					"Leading": 0.45,
				},
			},
		},
	}
}
