package motion

import (
	"fmt"

	"github.com/spinetoolbox/motion/intersect"
)

// PairResult is the intersection of one mesh pair
type PairResult struct {
	BoneA string
	BoneB string
	intersect.Result
}

// CollisionReport aggregates the intersection of every mesh pair
type CollisionReport struct {
	PerPair []PairResult
	// TotalBoneCollisions counts the pairs with at least one curve
	TotalBoneCollisions int
	// Tests is the number of pairs evaluated
	Tests int
}

// Colliding returns the pairs that intersect, in pair order
func (r CollisionReport) Colliding() []PairResult {
	var out []PairResult
	for _, p := range r.PerPair {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// Pair looks up the result for two mesh names in either order
func (r CollisionReport) Pair(a, b string) (PairResult, bool) {
	for _, p := range r.PerPair {
		if (p.BoneA == a && p.BoneB == b) || (p.BoneA == b && p.BoneB == a) {
			return p, true
		}
	}
	return PairResult{}, false
}

// Message is the human readable summary shown to the user
func (r CollisionReport) Message() string {
	switch n := r.TotalBoneCollisions; {
	case n == 1:
		return "There is 1 collision"
	case n > 1:
		return fmt.Sprintf("There are %d collisions", n)
	default:
		return "There are no collisions"
	}
}
