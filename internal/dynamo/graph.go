package dynamo

import "sort"

// Graph is an interaction graph: problem key to the set of agent ids whose
// dynamics must be considered jointly for that problem. It is built
// externally (typically from spatial proximity) and consumed by
// [MultiModel.Split].
type Graph map[int][]int

// Problems returns the problem keys in ascending order. Split output
// follows this order, keeping decompositions deterministic.
func (g Graph) Problems() []int {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
