package recipe

import "fmt"

// Profile is the closed set of scoring profiles. Each profile resolves to a
// weight record in profileWeights, so adding a profile never touches call
// sites.
type Profile string

const (
	ProfileBudget   Profile = "budget"
	ProfileFitness  Profile = "fitness"
	ProfileGourmet  Profile = "gourmet"
	ProfileBalanced Profile = "balanced"
)

// Profiles lists every supported profile in display order.
func Profiles() []Profile {
	return []Profile{ProfileBudget, ProfileFitness, ProfileGourmet, ProfileBalanced}
}

// ParseProfile validates a profile name coming from an API request or CLI
// input.
func ParseProfile(s string) (Profile, error) {
	switch p := Profile(s); p {
	case ProfileBudget, ProfileFitness, ProfileGourmet, ProfileBalanced:
		return p, nil
	default:
		return "", fmt.Errorf("unknown profile %q", s)
	}
}

// String implements fmt.Stringer.
func (p Profile) String() string { return string(p) }

// weights is one linear scoring scheme:
//
//	score = protein*Protein + fat*Fat + cost*Cost + rating*Rating
//	        + Bonus when the calorie predicate holds
//
// Scores are only comparable within the same profile and the same pool; no
// cross-profile normalization is performed.
type weights struct {
	Protein float64
	Fat     float64
	Cost    float64
	Rating  float64

	// Optional calorie-conditional adjustment.
	CalThreshold float64
	CalAbove     bool // true: applies when calories > threshold; false: when below
	Bonus        float64
}

var profileWeights = map[Profile]weights{
	// Minimize cost; penalize trivially small portions.
	ProfileBudget: {Cost: -10, CalThreshold: 200, CalAbove: false, Bonus: -10},
	// Protein density per athletic-nutrition guidance.
	ProfileFitness: {Protein: 3, Fat: -1.5, Cost: -0.5},
	// User satisfaction, with a bump for substantial portions.
	ProfileGourmet: {Rating: 20, CalThreshold: 400, CalAbove: true, Bonus: 5},
	// Even trade-off across the axes.
	ProfileBalanced: {Protein: 1.5, Fat: -0.5, Cost: -1},
}

// Score evaluates the record under the given profile. Pure function: the
// same inputs always yield a bit-identical result.
func Score(r *Record, profile Profile) float64 {
	w := profileWeights[profile]
	score := r.ProteinPDV*w.Protein +
		r.FatPDV*w.Fat +
		r.EstimatedCost()*w.Cost +
		r.Rating*w.Rating
	if w.Bonus != 0 {
		if w.CalAbove && r.Calories > w.CalThreshold {
			score += w.Bonus
		}
		if !w.CalAbove && r.Calories < w.CalThreshold {
			score += w.Bonus
		}
	}
	return score
}
