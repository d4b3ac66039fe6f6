package geometry

import (
	"math"
	"sort"
)

// NodeSegments splits every segment at every point where it meets another
// segment, endpoint touches included, and returns the resulting set of
// non-overlapping sub-segments. Zero-length input segments are dropped.
//
// Noding turns an arbitrary segment arrangement into a planar graph whose
// edges meet only at shared endpoints, which is what Polygonize requires.
func NodeSegments(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for i, s := range segs {
		if s.Length() <= Epsilon {
			continue
		}
		ts := []float64{0, 1}
		for j, t := range segs {
			if i == j {
				continue
			}
			ts = append(ts, splitParams(s, t)...)
		}
		sort.Float64s(ts)

		tol := segParamTol(s)
		prev := ts[0]
		for _, t := range ts[1:] {
			if t-prev <= tol {
				continue
			}
			out = append(out, Segment{A: s.PointAt(prev), B: s.PointAt(t)})
			prev = t
		}
	}
	return out
}

// splitParams returns the parameters along s at which the segment t meets
// it. Transversal intersections contribute one parameter; collinear
// overlaps contribute the projections of t's endpoints that lie on s.
func splitParams(s, t Segment) []float64 {
	d1 := Point2D{X: s.B.X - s.A.X, Y: s.B.Y - s.A.Y}
	d2 := Point2D{X: t.B.X - t.A.X, Y: t.B.Y - t.A.Y}
	denom := d1.X*d2.Y - d1.Y*d2.X

	if math.Abs(denom) > Epsilon*(s.Length()*t.Length()+Epsilon) {
		w := Point2D{X: t.A.X - s.A.X, Y: t.A.Y - s.A.Y}
		u := (w.X*d2.Y - w.Y*d2.X) / denom
		v := (w.X*d1.Y - w.Y*d1.X) / denom
		uTol, vTol := segParamTol(s), segParamTol(t)
		if u >= -uTol && u <= 1+uTol && v >= -vTol && v <= 1+vTol {
			return []float64{clamp01(u)}
		}
		return nil
	}

	// Parallel or collinear: endpoints of t that lie on s become nodes.
	var ps []float64
	l2 := d1.X*d1.X + d1.Y*d1.Y
	for _, p := range []Point2D{t.A, t.B} {
		if !onSegment(p, s, Epsilon) {
			continue
		}
		u := ((p.X-s.A.X)*d1.X + (p.Y-s.A.Y)*d1.Y) / l2
		ps = append(ps, clamp01(u))
	}
	return ps
}
