package pbqp

import (
	"fmt"
)

// NodeID is a stable handle into a Graph's node arena
type NodeID int

// EdgeID is a stable handle into a Graph's edge arena
type EdgeID int

type node struct {
	costs Vector
	edges []EdgeID
}

type edge struct {
	a, b  NodeID
	costs Matrix // rows index a's options, columns b's
}

// Graph is a minimum-cost labeling problem: one unary cost vector per node and
// one pairwise cost matrix per edge. Nodes and edges live in index arenas and
// are never removed; the solver reduces a private working copy.
type Graph struct {
	nodes []node
	edges []edge
	pairs map[[2]NodeID]EdgeID
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		nodes: make([]node, 0),
		edges: make([]edge, 0),
		pairs: make(map[[2]NodeID]EdgeID),
	}
}

// AddNode adds a node with the given unary costs and returns its handle.
// The vector is copied.
func (g *Graph) AddNode(costs Vector) (NodeID, error) {
	if len(costs) == 0 {
		return -1, ErrNoOptions
	}
	for _, c := range costs {
		if !validCost(c) {
			return -1, fmt.Errorf("%w: %v", ErrInvalidCost, c)
		}
	}
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{costs: costs.Clone()})
	return id, nil
}

// AddEdge relates nodes a and b with a cost matrix whose rows index a's
// options and columns b's. A second edge between the same pair is merged
// into the first by addition and the existing handle is returned.
func (g *Graph) AddEdge(a, b NodeID, costs Matrix) (EdgeID, error) {
	if !g.hasNode(a) {
		return -1, fmt.Errorf("%w: %d", ErrUnknownNode, a)
	}
	if !g.hasNode(b) {
		return -1, fmt.Errorf("%w: %d", ErrUnknownNode, b)
	}
	if a == b {
		return -1, fmt.Errorf("%w: %d", ErrSelfEdge, a)
	}
	if costs.Rows != len(g.nodes[a].costs) || costs.Cols != len(g.nodes[b].costs) {
		return -1, fmt.Errorf("%w: edge %d-%d is %dx%d, nodes have %d and %d options",
			ErrDimensionMismatch, a, b, costs.Rows, costs.Cols, len(g.nodes[a].costs), len(g.nodes[b].costs))
	}
	if !costs.valid() {
		return -1, ErrInvalidCost
	}

	if id, ok := g.pairs[pairKey(a, b)]; ok {
		existing := g.edges[id]
		if existing.a != a {
			costs = costs.Transpose()
		}
		if err := existing.costs.Add(costs); err != nil {
			return -1, err
		}
		return id, nil
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge{a: a, b: b, costs: costs.Clone()})
	g.nodes[a].edges = append(g.nodes[a].edges, id)
	g.nodes[b].edges = append(g.nodes[b].edges, id)
	g.pairs[pairKey(a, b)] = id
	return id, nil
}

func (g *Graph) hasNode(n NodeID) bool {
	return n >= 0 && int(n) < len(g.nodes)
}

func pairKey(a, b NodeID) [2]NodeID {
	if a > b {
		a, b = b, a
	}
	return [2]NodeID{a, b}
}

// NumNodes returns the number of nodes
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the number of distinct edges
func (g *Graph) NumEdges() int { return len(g.edges) }

// NumOptions returns the number of options of node n
func (g *Graph) NumOptions(n NodeID) int { return len(g.nodes[n].costs) }

// NodeCosts returns a copy of node n's unary costs
func (g *Graph) NodeCosts(n NodeID) Vector { return g.nodes[n].costs.Clone() }

// EdgeCosts returns a copy of edge e's cost matrix
func (g *Graph) EdgeCosts(e EdgeID) Matrix { return g.edges[e].costs.Clone() }

// EdgeNodes returns the endpoints of edge e in matrix orientation
func (g *Graph) EdgeNodes(e EdgeID) (NodeID, NodeID) {
	return g.edges[e].a, g.edges[e].b
}

// FindEdge returns the edge between a and b, if any
func (g *Graph) FindEdge(a, b NodeID) (EdgeID, bool) {
	id, ok := g.pairs[pairKey(a, b)]
	return id, ok
}

// Degree returns the number of edges incident to n
func (g *Graph) Degree(n NodeID) int { return len(g.nodes[n].edges) }

// Neighbors returns the nodes adjacent to n in edge insertion order
func (g *Graph) Neighbors(n NodeID) []NodeID {
	out := make([]NodeID, 0, len(g.nodes[n].edges))
	for _, e := range g.nodes[n].edges {
		ed := g.edges[e]
		if ed.a == n {
			out = append(out, ed.b)
		} else {
			out = append(out, ed.a)
		}
	}
	return out
}

// TotalCost evaluates a complete labeling against the graph. Selections
// must hold one in-range option per node.
func (g *Graph) TotalCost(selections []int) (Cost, error) {
	if len(selections) != len(g.nodes) {
		return Inf, fmt.Errorf("%w: %d selections for %d nodes", ErrDimensionMismatch, len(selections), len(g.nodes))
	}
	total := Cost(0)
	for n, nd := range g.nodes {
		s := selections[n]
		if s < 0 || s >= len(nd.costs) {
			return Inf, fmt.Errorf("node %d: selection %d out of range [0,%d)", n, s, len(nd.costs))
		}
		total = AddCost(total, nd.costs[s])
	}
	for _, ed := range g.edges {
		total = AddCost(total, ed.costs.At(selections[ed.a], selections[ed.b]))
	}
	return total, nil
}

// violations lists the nodes and edges whose selected cost is forbidden
func (g *Graph) violations(selections []int) ([]NodeID, []EdgeID) {
	var nodes []NodeID
	var edges []EdgeID
	for n, nd := range g.nodes {
		if IsInf(nd.costs[selections[n]]) {
			nodes = append(nodes, NodeID(n))
		}
	}
	for e, ed := range g.edges {
		if IsInf(ed.costs.At(selections[ed.a], selections[ed.b])) {
			edges = append(edges, EdgeID(e))
		}
	}
	return nodes, edges
}
