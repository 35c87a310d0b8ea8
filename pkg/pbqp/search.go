package pbqp

import (
	"slices"
	"time"
)

// pickHeuristic chooses the node to fix when only degree >= 3 nodes remain:
// the highest degree, then the fewest options, then the lowest ID.
func (s *solver) pickHeuristic(candidates []NodeID) NodeID {
	best := candidates[0]
	for _, n := range candidates[1:] {
		dn, db := s.w.degree(n), s.w.degree(best)
		if dn > db || (dn == db && len(s.w.nodes[n].costs) < len(s.w.nodes[best].costs)) {
			best = n
		}
	}
	return best
}

// reduceRN fixes node x to its locally cheapest option and folds the chosen
// row of each incident edge into the neighbor. Optimality is forfeited.
func (s *solver) reduceRN(x NodeID) error {
	cx := s.w.nodes[x].costs
	adj := slices.Clone(s.w.nodes[x].adj)

	best, pick := Inf, -1
	for i := range cx {
		local := cx[i]
		for _, e := range adj {
			y := s.w.other(e, x)
			m := s.w.oriented(e, x)
			cy := s.w.nodes[y].costs
			step := Inf
			for j := 0; j < m.Cols; j++ {
				if c := AddCost(m.At(i, j), cy[j]); c < step {
					step = c
				}
			}
			local = AddCost(local, step)
		}
		if local < best {
			best, pick = local, i
		}
	}
	if pick < 0 {
		return &InfeasibleError{
			Op:     "RN",
			Nodes:  []NodeID{x},
			Edges:  s.w.originalEdges(adj...),
			Reason: "every option is forbidden against some neighbor",
		}
	}

	neighbors := make([]NodeID, 0, len(adj))
	for _, e := range adj {
		y := s.w.other(e, x)
		s.w.nodes[y].costs.Add(s.w.oriented(e, x).Row(pick))
		neighbors = append(neighbors, y)
	}
	s.push(record{kind: recordFixed, node: x, pick: pick})
	s.w.removeNode(x)
	s.stats.RN++

	for _, y := range neighbors {
		if s.w.nodes[y].costs.AllInf() {
			return &InfeasibleError{
				Op:     "RN",
				Nodes:  []NodeID{y, x},
				Edges:  s.w.originalEdges(adj...),
				Reason: "heuristic choice left a neighbor without options",
			}
		}
	}
	return nil
}

// search runs an exact depth-first branch-and-bound over the given alive
// nodes, which must not share edges with any other alive node. The result is
// recorded as fixed selections and the nodes are removed.
func (s *solver) search(nodes []NodeID) error {
	k := len(nodes)
	pos := make(map[NodeID]int, k)
	for i, n := range nodes {
		pos[n] = i
	}

	// For each node, the edges to nodes earlier in the order.
	type backEdge struct {
		m     Matrix // rows index this node's options
		other int
	}
	back := make([][]backEdge, k)
	for i, n := range nodes {
		for _, e := range s.w.nodes[n].adj {
			j := pos[s.w.other(e, n)]
			if j < i {
				back[i] = append(back[i], backEdge{m: s.w.oriented(e, n), other: j})
			}
		}
	}

	// Options in ascending unary cost so good labelings are found early.
	order := make([][]int, k)
	bound := make([]Cost, k+1)
	for i := k - 1; i >= 0; i-- {
		costs := s.w.nodes[nodes[i]].costs
		idx := make([]int, len(costs))
		for o := range idx {
			idx[o] = o
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			switch {
			case costs[a] < costs[b]:
				return -1
			case costs[a] > costs[b]:
				return 1
			}
			return 0
		})
		order[i] = idx
		bound[i] = AddCost(bound[i+1], costs.Min())
	}

	cur := make([]int, k)
	best := make([]int, k)
	bestCost := Inf
	var failure error

	var visit func(i int, partial Cost) bool
	visit = func(i int, partial Cost) bool {
		if i == k {
			if partial < bestCost {
				bestCost = partial
				copy(best, cur)
			}
			return true
		}
		costs := s.w.nodes[nodes[i]].costs
		for _, o := range order[i] {
			if err := s.tick(); err != nil {
				failure = err
				return false
			}
			c := AddCost(partial, costs[o])
			for _, be := range back[i] {
				c = AddCost(c, be.m.At(o, cur[be.other]))
			}
			if IsInf(c) || AddCost(c, bound[i+1]) >= bestCost {
				continue
			}
			cur[i] = o
			if !visit(i+1, c) {
				return false
			}
		}
		return true
	}
	visit(0, 0)

	if failure != nil {
		return failure
	}
	if IsInf(bestCost) {
		var edges []EdgeID
		for _, n := range nodes {
			edges = append(edges, s.w.nodes[n].adj...)
		}
		slices.Sort(edges)
		return &InfeasibleError{
			Op:     "search",
			Nodes:  slices.Clone(nodes),
			Edges:  s.w.originalEdges(slices.Compact(edges)...),
			Reason: "exhaustive search found no finite labeling",
		}
	}

	for i, n := range nodes {
		s.push(record{kind: recordFixed, node: n, pick: best[i]})
	}
	for _, n := range nodes {
		s.w.removeNode(n)
	}
	return nil
}

// tick counts one search step and enforces the step, time and context bounds.
func (s *solver) tick() error {
	s.stats.SearchSteps++
	if s.opts.MaxSearchSteps > 0 && s.stats.SearchSteps > s.opts.MaxSearchSteps {
		return &TimeoutError{Steps: s.stats.SearchSteps, Limit: s.opts.MaxSearchSteps, Elapsed: time.Since(s.start)}
	}
	if s.stats.SearchSteps%1024 == 0 {
		if err := s.ctx.Err(); err != nil {
			return &TimeoutError{Steps: s.stats.SearchSteps, Limit: s.opts.MaxSearchSteps, Elapsed: time.Since(s.start), Cause: err}
		}
		if !s.deadline.IsZero() && time.Now().After(s.deadline) {
			return &TimeoutError{Steps: s.stats.SearchSteps, Limit: s.opts.MaxSearchSteps, Elapsed: time.Since(s.start)}
		}
	}
	return nil
}
