package geometry

import "math"

// cross2 returns the z-component of the cross product (b-a) x (c-a).
// Positive when c lies to the left of the directed line a->b.
func cross2(a, b, c Point2D) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// orient classifies c relative to the directed line a->b: +1 left, -1 right,
// 0 collinear within Epsilon. The cross product is normalized by the segment
// length so the tolerance acts as a perpendicular distance.
func orient(a, b, c Point2D) int {
	d := cross2(a, b, c)
	l := a.Distance(b)
	if l > 0 {
		d /= l
	}
	if d > Epsilon {
		return 1
	}
	if d < -Epsilon {
		return -1
	}
	return 0
}

// onSegment reports whether p lies on the segment s within tol of it.
func onSegment(p Point2D, s Segment, tol float64) bool {
	return DistanceToSegment(p, s) <= tol
}

// DistanceToSegment returns the shortest distance from p to the segment s.
func DistanceToSegment(p Point2D, s Segment) float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return p.Distance(s.A)
	}
	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Distance(Point2D{X: s.A.X + t*dx, Y: s.A.Y + t*dy})
}

// SegmentIntersection returns the intersection point of two segments and
// true if they intersect in exactly one point, including touches at
// endpoints. Collinear overlaps report no single intersection point.
func SegmentIntersection(s, t Segment) (Point2D, bool) {
	d1 := Point2D{X: s.B.X - s.A.X, Y: s.B.Y - s.A.Y}
	d2 := Point2D{X: t.B.X - t.A.X, Y: t.B.Y - t.A.Y}
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) <= Epsilon*(s.Length()*t.Length()+Epsilon) {
		return Point2D{}, false
	}
	w := Point2D{X: t.A.X - s.A.X, Y: t.A.Y - s.A.Y}
	u := (w.X*d2.Y - w.Y*d2.X) / denom
	v := (w.X*d1.Y - w.Y*d1.X) / denom
	lenTol := segParamTol(s)
	if u < -lenTol || u > 1+lenTol || v < -segParamTol(t) || v > 1+segParamTol(t) {
		return Point2D{}, false
	}
	return s.PointAt(clamp01(u)), true
}

// segParamTol converts the coordinate tolerance Epsilon into a parameter
// tolerance along the segment.
func segParamTol(s Segment) float64 {
	l := s.Length()
	if l <= Epsilon {
		return 1
	}
	return Epsilon / l
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// SegmentsCross reports whether the interiors of two segments intersect.
// Touching at an endpoint of either segment does not count, a proper
// transversal crossing does, and so does a collinear overlap of positive
// length.
func SegmentsCross(s, t Segment) bool {
	o1 := orient(s.A, s.B, t.A)
	o2 := orient(s.A, s.B, t.B)
	o3 := orient(t.A, t.B, s.A)
	o4 := orient(t.A, t.B, s.B)

	// Proper crossing: each segment separates the other's endpoints.
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}

	// Collinear: the interiors overlap when the 1D projections share more
	// than a single point.
	if o1 == 0 && o2 == 0 && o3 == 0 && o4 == 0 {
		return collinearOverlap(s, t)
	}
	return false
}

// collinearOverlap reports whether two collinear segments share a stretch of
// positive length.
func collinearOverlap(s, t Segment) bool {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	// Project onto the dominant axis to avoid degenerate divisions.
	var sa, sb, ta, tb float64
	if math.Abs(dx) >= math.Abs(dy) {
		sa, sb = s.A.X, s.B.X
		ta, tb = t.A.X, t.B.X
	} else {
		sa, sb = s.A.Y, s.B.Y
		ta, tb = t.A.Y, t.B.Y
	}
	if sa > sb {
		sa, sb = sb, sa
	}
	if ta > tb {
		ta, tb = tb, ta
	}
	lo := math.Max(sa, ta)
	hi := math.Min(sb, tb)
	return hi-lo > Epsilon
}

// ContainsPoint reports whether p lies inside the ring or within tol of its
// boundary. Uses the even-odd crossing rule.
func (r Ring) ContainsPoint(p Point2D, tol float64) bool {
	for i := range r {
		if onSegment(p, r.Edge(i), tol) {
			return true
		}
	}
	inside := false
	n := len(r)
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// CoversSegment reports whether the segment lies entirely within the ring,
// allowing it to touch the boundary. tol enlarges the ring by treating
// points within tol of the boundary as inside; a segment that escapes the
// ring must properly cross one of its edges away from the segment endpoints,
// which is what this checks for after verifying the endpoints and midpoint.
func (r Ring) CoversSegment(s Segment, tol float64) bool {
	if !r.ContainsPoint(s.A, tol) || !r.ContainsPoint(s.B, tol) {
		return false
	}
	if !r.ContainsPoint(s.Midpoint(), tol) {
		return false
	}
	for i := range r {
		edge := r.Edge(i)
		p, ok := SegmentIntersection(s, edge)
		if !ok {
			continue
		}
		if p.Distance(s.A) <= tol || p.Distance(s.B) <= tol {
			continue
		}
		// A transversal crossing in the segment interior means it exits.
		if orient(edge.A, edge.B, s.A)*orient(edge.A, edge.B, s.B) < 0 {
			return false
		}
	}
	return true
}

// IntersectionsWithSegment returns the distinct points where the segment
// meets the ring boundary, endpoint touches included.
func (r Ring) IntersectionsWithSegment(s Segment) []Point2D {
	var pts []Point2D
	for i := range r {
		p, ok := SegmentIntersection(s, r.Edge(i))
		if !ok {
			continue
		}
		dup := false
		for _, q := range pts {
			if p.Close(q, 1e-6) {
				dup = true
				break
			}
		}
		if !dup {
			pts = append(pts, p)
		}
	}
	return pts
}
