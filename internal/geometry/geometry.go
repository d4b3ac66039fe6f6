// Package geometry provides the 2D primitives used by the infill engine:
// points, segments and closed rings, together with the predicates the
// placement and evaluation code depends on (containment, crossing, noding
// and polygonization of segment arrangements).
//
// All coordinates are in centimeters. X increases to the right, Y increases
// up the page.
package geometry

import "math"

// Epsilon is the tolerance used to merge near-coincident points and to
// decide degenerate cases in the predicates. Coordinates closer than this
// are considered equal.
const Epsilon = 1e-9

// Point2D represents a 2D coordinate in cm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to q.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Close reports whether p and q coincide within tol.
func (p Point2D) Close(q Point2D, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Segment is a straight line segment between two points.
type Segment struct {
	A Point2D `json:"a"`
	B Point2D `json:"b"`
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point2D {
	return Point2D{X: (s.A.X + s.B.X) / 2, Y: (s.A.Y + s.B.Y) / 2}
}

// PointAt returns the point at parameter t along the segment, where t=0 is A
// and t=1 is B.
func (s Segment) PointAt(t float64) Point2D {
	return Point2D{X: s.A.X + t*(s.B.X-s.A.X), Y: s.A.Y + t*(s.B.Y-s.A.Y)}
}

// SignedAngleFromVerticalDeg returns the angle of the undirected segment
// measured from the vertical axis, in degrees within (-90, 90]. A segment
// leaning right while going up has a positive angle; a horizontal segment
// returns 90.
func (s Segment) SignedAngleFromVerticalDeg() float64 {
	dx, dy := s.B.X-s.A.X, s.B.Y-s.A.Y
	if dy < 0 {
		dx, dy = -dx, -dy
	}
	if dy == 0 {
		return 90
	}
	return math.Atan(dx/dy) * 180 / math.Pi
}

// AngleFromVerticalDeg returns the absolute deviation of the segment from
// vertical in degrees, in [0, 90]. A purely vertical segment returns 0.
func (s Segment) AngleFromVerticalDeg() float64 {
	return math.Abs(s.SignedAngleFromVerticalDeg())
}

// Ring represents a closed polygon as a sequence of 2D points.
// The ring is implicitly closed: the last point connects back to the first.
type Ring []Point2D

// Edge returns the i-th edge of the ring, wrapping around at the end.
func (r Ring) Edge(i int) Segment {
	j := (i + 1) % len(r)
	return Segment{A: r[i], B: r[j]}
}

// SignedArea returns the shoelace area of the ring: positive for
// counterclockwise orientation, negative for clockwise.
func (r Ring) SignedArea() float64 {
	if len(r) < 3 {
		return 0
	}
	var sum float64
	for i := range r {
		j := (i + 1) % len(r)
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum / 2
}

// Area returns the absolute enclosed area of the ring.
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Perimeter returns the total edge length of the closed ring.
func (r Ring) Perimeter() float64 {
	if len(r) < 2 {
		return 0
	}
	var sum float64
	for i := range r {
		sum += r.Edge(i).Length()
	}
	return sum
}

// BoundingBox returns the min and max corners of the ring.
func (r Ring) BoundingBox() (min, max Point2D) {
	if len(r) == 0 {
		return Point2D{}, Point2D{}
	}
	min, max = r[0], r[0]
	for _, p := range r[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Diagonal returns the diagonal length of the ring's bounding box.
func (r Ring) Diagonal() float64 {
	min, max := r.BoundingBox()
	return min.Distance(max)
}
