package geometry

import (
	"math"
	"sort"
)

// snapGrid is the rounding grid used to merge vertices produced by noding.
// Intersection points computed on two different segments can differ by tiny
// floating point error; snapping both to this grid gives them a common
// identity in the planar graph.
const snapGrid = 1e-6

// minFaceArea filters out degenerate faces produced by numerically collapsed
// walks. Anything below a millionth of a cm² is noise.
const minFaceArea = 1e-6

// Polygonize extracts the enclosed faces of a noded segment arrangement.
// The input must already be noded (see NodeSegments): edges may share
// endpoints but must not cross in their interiors. Dangling edges that do
// not bound any area are pruned. The unbounded outer face is not reported.
//
// Each returned ring is counterclockwise.
func Polygonize(segs []Segment) []Ring {
	g := buildPlanarGraph(segs)
	g.pruneDangles()
	return g.faces()
}

type vertexKey struct{ xi, yi int64 }

func keyOf(p Point2D) vertexKey {
	return vertexKey{xi: int64(math.Round(p.X / snapGrid)), yi: int64(math.Round(p.Y / snapGrid))}
}

// halfEdge is one direction of an undirected planar graph edge.
type halfEdge struct {
	from, to int
	twin     int
	angle    float64 // direction angle at the origin vertex
	removed  bool
	visited  bool
}

type planarGraph struct {
	points   []Point2D
	half     []halfEdge
	outgoing [][]int // per vertex, half-edge indices sorted by angle
}

func buildPlanarGraph(segs []Segment) *planarGraph {
	g := &planarGraph{}
	ids := make(map[vertexKey]int)
	vertexOf := func(p Point2D) int {
		k := keyOf(p)
		if id, ok := ids[k]; ok {
			return id
		}
		id := len(g.points)
		ids[k] = id
		g.points = append(g.points, p)
		return id
	}

	seen := make(map[[2]int]bool)
	for _, s := range segs {
		u, v := vertexOf(s.A), vertexOf(s.B)
		if u == v {
			continue
		}
		k := [2]int{u, v}
		if u > v {
			k = [2]int{v, u}
		}
		if seen[k] {
			continue
		}
		seen[k] = true

		pu, pv := g.points[u], g.points[v]
		i := len(g.half)
		g.half = append(g.half,
			halfEdge{from: u, to: v, twin: i + 1, angle: math.Atan2(pv.Y-pu.Y, pv.X-pu.X)},
			halfEdge{from: v, to: u, twin: i, angle: math.Atan2(pu.Y-pv.Y, pu.X-pv.X)},
		)
	}

	g.outgoing = make([][]int, len(g.points))
	for i, h := range g.half {
		g.outgoing[h.from] = append(g.outgoing[h.from], i)
	}
	for v := range g.outgoing {
		out := g.outgoing[v]
		sort.Slice(out, func(a, b int) bool { return g.half[out[a]].angle < g.half[out[b]].angle })
	}
	return g
}

// pruneDangles removes edges that end in a degree-1 vertex, repeating until
// none remain. Such edges cannot bound a face.
func (g *planarGraph) pruneDangles() {
	degree := make([]int, len(g.points))
	for i := 0; i < len(g.half); i += 2 {
		degree[g.half[i].from]++
		degree[g.half[i].to]++
	}

	queue := make([]int, 0)
	for v, d := range degree {
		if d == 1 {
			queue = append(queue, v)
		}
	}
	for len(queue) > 0 {
		v := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if degree[v] != 1 {
			continue
		}
		for _, hi := range g.outgoing[v] {
			h := &g.half[hi]
			if h.removed {
				continue
			}
			h.removed = true
			g.half[h.twin].removed = true
			degree[v]--
			degree[h.to]--
			if degree[h.to] == 1 {
				queue = append(queue, h.to)
			}
			break
		}
	}
}

// next returns the half-edge that continues the face walk after h: among the
// edges leaving h's target vertex, the first one clockwise from h's twin.
// With counterclockwise angle ordering this traces every bounded face
// counterclockwise and the unbounded face clockwise.
func (g *planarGraph) next(hi int) int {
	h := g.half[hi]
	out := g.outgoing[h.to]
	pos := -1
	for i, oi := range out {
		if oi == h.twin {
			pos = i
			break
		}
	}
	n := len(out)
	for step := 1; step <= n; step++ {
		cand := out[((pos-step)%n+n)%n]
		if !g.half[cand].removed {
			return cand
		}
	}
	return h.twin
}

// faces walks every unvisited half-edge cycle and returns the bounded faces
// as counterclockwise rings.
func (g *planarGraph) faces() []Ring {
	var rings []Ring
	for start := range g.half {
		if g.half[start].visited || g.half[start].removed {
			continue
		}
		var ring Ring
		hi := start
		for {
			g.half[hi].visited = true
			ring = append(ring, g.points[g.half[hi].from])
			hi = g.next(hi)
			if hi == start {
				break
			}
			if g.half[hi].visited {
				// Safety valve against malformed topology.
				break
			}
		}
		if len(ring) >= 3 && ring.SignedArea() > minFaceArea {
			rings = append(rings, ring)
		}
	}
	return rings
}
