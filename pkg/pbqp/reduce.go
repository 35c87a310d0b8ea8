package pbqp

type recordKind int

const (
	recordR0 recordKind = iota
	recordR1
	recordR2
	recordFixed
)

// record is one entry of the elimination stack, replayed in reverse during
// back-substitution.
type record struct {
	kind  recordKind
	node  NodeID
	costs Vector // R0: folded costs at removal time
	y, z  NodeID // R1: y; R2: y and z
	zLen  int
	table []int // R1: arg-min per y option; R2: per (y, z) pair, row-major
	pick  int   // fixed selections from RN or search
}

// reduce applies R0, R1 and R2 in ascending node order until no node of
// degree two or less remains.
func (s *solver) reduce() error {
	for {
		progress := false
		for i := range s.w.nodes {
			n := NodeID(i)
			if !s.w.nodes[n].alive {
				continue
			}
			var err error
			switch s.w.degree(n) {
			case 0:
				err = s.reduceR0(n)
			case 1:
				err = s.reduceR1(n)
			case 2:
				err = s.reduceR2(n)
			default:
				continue
			}
			if err != nil {
				return err
			}
			progress = true
		}
		if !progress {
			return nil
		}
	}
}

// reduceR0 solves an isolated node by its cheapest option.
func (s *solver) reduceR0(x NodeID) error {
	costs := s.w.nodes[x].costs
	if costs.AllInf() {
		return &InfeasibleError{Op: "R0", Nodes: []NodeID{x}, Reason: "every option is forbidden"}
	}
	s.push(record{kind: recordR0, node: x, costs: costs.Clone()})
	s.w.removeNode(x)
	s.stats.R0++
	return nil
}

// reduceR1 folds a degree-one node into its neighbor's unary costs.
func (s *solver) reduceR1(x NodeID) error {
	e := s.w.nodes[x].adj[0]
	y := s.w.other(e, x)
	m := s.w.oriented(e, x)
	cx := s.w.nodes[x].costs

	delta := make(Vector, m.Cols)
	table := make([]int, m.Cols)
	for j := 0; j < m.Cols; j++ {
		best, arg := Inf, 0
		for i := 0; i < m.Rows; i++ {
			if c := AddCost(cx[i], m.At(i, j)); c < best {
				best, arg = c, i
			}
		}
		delta[j] = best
		table[j] = arg
	}

	s.w.nodes[y].costs.Add(delta)
	s.push(record{kind: recordR1, node: x, y: y, table: table})
	s.w.removeNode(x)
	s.stats.R1++

	if s.w.nodes[y].costs.AllInf() {
		return &InfeasibleError{
			Op:     "R1",
			Nodes:  []NodeID{y, x},
			Edges:  s.w.originalEdges(e),
			Reason: "folding left every option of the neighbor forbidden",
		}
	}
	return nil
}

// reduceR2 replaces a degree-two node by a direct edge between its neighbors.
func (s *solver) reduceR2(x NodeID) error {
	e1, e2 := s.w.nodes[x].adj[0], s.w.nodes[x].adj[1]
	y, z := s.w.other(e1, x), s.w.other(e2, x)
	my, mz := s.w.oriented(e1, x), s.w.oriented(e2, x)
	cx := s.w.nodes[x].costs

	d := NewMatrix(my.Cols, mz.Cols)
	table := make([]int, my.Cols*mz.Cols)
	for j := 0; j < my.Cols; j++ {
		for k := 0; k < mz.Cols; k++ {
			best, arg := Inf, 0
			for i := 0; i < my.Rows; i++ {
				c := AddCost(AddCost(cx[i], my.At(i, j)), mz.At(i, k))
				if c < best {
					best, arg = c, i
				}
			}
			d.Set(j, k, best)
			table[j*mz.Cols+k] = arg
		}
	}

	s.push(record{kind: recordR2, node: x, y: y, z: z, zLen: mz.Cols, table: table})
	s.w.removeNode(x)
	merged := s.w.addEdge(y, z, d)
	s.stats.R2++

	if s.w.edges[merged].costs.AllInf() {
		return &InfeasibleError{
			Op:     "R2",
			Nodes:  []NodeID{x, y, z},
			Edges:  s.w.originalEdges(e1, e2, merged),
			Reason: "no pair of neighbor options admits a finite cost",
		}
	}
	return nil
}
