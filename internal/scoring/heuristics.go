package scoring

// Heuristics holds the tunable constants behind SkinCol and Importance.
//
// Heuristics is a plain value: copy it, change a field, and pass the copy to
// compare two scoring variants side by side. The zero value is not useful;
// start from DefaultHeuristics.
type Heuristics struct {
	// SkinColor is the reference skin tone as a unit vector in RGB space.
	SkinColor [3]float64 `json:"skin_color" mapstructure:"skin_color"`

	// OutsideImportance is the weight of every pixel outside a crop.
	OutsideImportance float64 `json:"outside_importance" mapstructure:"outside_importance"`

	// EdgeRadius is the width of the band along each crop edge, as a
	// fraction of the half-extent, in which EdgeWeight applies.
	EdgeRadius float64 `json:"edge_radius" mapstructure:"edge_radius"`

	// EdgeWeight scales the squared penetration into the edge band.
	EdgeWeight float64 `json:"edge_weight" mapstructure:"edge_weight"`

	// RuleOfThirds enables the boost around the thirds lines.
	RuleOfThirds bool `json:"rule_of_thirds" mapstructure:"rule_of_thirds"`
}

// DefaultHeuristics returns the reference scoring constants.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		SkinColor:         [3]float64{0.78, 0.57, 0.44},
		OutsideImportance: -0.5,
		EdgeRadius:        0.4,
		EdgeWeight:        -20.0,
		RuleOfThirds:      true,
	}
}

var defaultHeuristics = DefaultHeuristics()
