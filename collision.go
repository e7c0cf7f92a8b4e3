package motion

import (
	"sync"

	"github.com/spinetoolbox/motion/intersect"
	"github.com/spinetoolbox/motion/mesh"
)

// Pair identifies two distinct meshes of the working set, I < J in registration order
type Pair struct {
	I, J  int
	BoneA *mesh.Mesh
	BoneB *mesh.Mesh
}

// pairOutcome carries the result of one pair test back to the collector
type pairOutcome struct {
	index  int
	result intersect.Result
	err    error
}

// allPairs lists every unordered pair of distinct meshes, N*(N-1)/2 entries
func allPairs(bones []*mesh.Mesh) []Pair {
	pairs := make([]Pair, 0, len(bones)*(len(bones)-1)/2)
	for i := 0; i < len(bones); i++ {
		for j := i + 1; j < len(bones); j++ {
			pairs = append(pairs, Pair{I: i, J: j, BoneA: bones[i], BoneB: bones[j]})
		}
	}
	return pairs
}

// IntersectPairs tests every pair on workersCount goroutines. Results are indexed like
// pairs whatever the completion order. The first error encountered is returned.
func IntersectPairs(pairs []Pair, opts intersect.Options, workersCount int) ([]intersect.Result, error) {
	jobs := make(chan int, len(pairs))
	for i := range pairs {
		jobs <- i
	}
	close(jobs)

	outcomes := make(chan pairOutcome, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(outcomes)

		for range max(1, workersCount) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					result, err := intersect.Intersect(pairs[i].BoneA, pairs[i].BoneB, opts)
					outcomes <- pairOutcome{index: i, result: result, err: err}
				}
			}()
		}
		wg.Wait()
	}()

	results := make([]intersect.Result, len(pairs))
	var firstErr error
	for o := range outcomes {
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results[o.index] = o.result
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
