package acl

// DFS vertex states for cycle detection.
const (
	unvisited = iota
	onStack
	finished
)

// FindCycle checks whether the graph's edge relation contains a directed
// cycle. It returns the cycle as a closed path (first and last element
// equal) for diagnostics, or nil if the graph is acyclic. The graph is
// not modified, and vertices are visited in declaration order so the
// reported cycle is stable across runs.
func FindCycle(g *Graph) []string {
	state := make(map[string]int, len(g.order))

	var path []string

	var visit func(name string) []string
	visit = func(name string) []string {
		state[name] = onStack
		path = append(path, name)

		for _, parent := range g.parents[name] {
			switch state[parent] {
			case onStack:
				// Close the loop from the first occurrence of parent
				// on the current recursion path.
				for i, n := range path {
					if n == parent {
						cycle := make([]string, 0, len(path)-i+1)
						cycle = append(cycle, path[i:]...)
						return append(cycle, parent)
					}
				}
			case unvisited:
				if cycle := visit(parent); cycle != nil {
					return cycle
				}
			}
		}

		path = path[:len(path)-1]
		state[name] = finished
		return nil
	}

	for _, name := range g.order {
		if state[name] != unvisited {
			continue
		}
		if cycle := visit(name); cycle != nil {
			return cycle
		}
	}

	return nil
}
