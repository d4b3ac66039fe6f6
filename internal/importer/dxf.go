package importer

import (
	"fmt"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/railgen/internal/geometry"
)

// ImportFrameDXF reads a frame boundary from a DXF file. LINE entities and
// LWPOLYLINE edges are chained into closed loops; the file must contain
// exactly one. Rods are straight, so curved entities (ARC, CIRCLE, bulged
// polyline edges) are not importable and produce warnings.
func ImportFrameDXF(path string, weightPerMeter float64) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var segments []geometry.Segment
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.Line:
			seg := geometry.Segment{
				A: geometry.Point2D{X: e.Start[0], Y: e.Start[1]},
				B: geometry.Point2D{X: e.End[0], Y: e.End[1]},
			}
			if pointsClose(seg.A, seg.B, connectToleranceCm) {
				result.Warnings = append(result.Warnings, "Skipped zero-length LINE")
				continue
			}
			segments = append(segments, seg)

		case *entity.LwPolyline:
			segs, bulged := lwPolylineToSegments(e)
			if bulged {
				result.Warnings = append(result.Warnings,
					"LWPOLYLINE bulges ignored, edges treated as straight")
			}
			if len(segs) == 0 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 distinct vertices")
				continue
			}
			segments = append(segments, segs...)

		case *entity.Circle:
			result.Warnings = append(result.Warnings,
				"Skipped CIRCLE entity, a rod frame has straight edges only")

		case *entity.Arc:
			result.Warnings = append(result.Warnings,
				"Skipped ARC entity, a rod frame has straight edges only")

		default:
			// Unsupported entity types are silently skipped
		}
	}

	if len(segments) == 0 {
		result.Errors = append(result.Errors, "No usable LINE or LWPOLYLINE entities found")
		return result
	}

	loops, open := chainSegments(segments, connectToleranceCm)
	if open > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d segment(s) did not close into a loop and were ignored", open))
	}

	switch len(loops) {
	case 0:
		result.Errors = append(result.Errors, "No closed outline found in DXF file")
		return result
	case 1:
	default:
		result.Errors = append(result.Errors,
			fmt.Sprintf("DXF file contains %d closed outlines, the frame boundary must be exactly 1", len(loops)))
		return result
	}

	frame, err := frameFromCorners(loops[0], weightPerMeter)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	result.Frame = frame
	return result
}

// lwPolylineToSegments converts an LWPOLYLINE into the edges between its
// consecutive vertices, closing back to the first vertex. The second return
// reports whether any edge carried a bulge (arc) factor.
func lwPolylineToSegments(lw *entity.LwPolyline) ([]geometry.Segment, bool) {
	var pts []geometry.Point2D
	for _, v := range lw.Vertices {
		p := geometry.Point2D{X: v[0], Y: v[1]}
		if len(pts) > 0 && pointsClose(pts[len(pts)-1], p, connectToleranceCm) {
			continue
		}
		pts = append(pts, p)
	}
	// Drop an explicit closing vertex; the closing edge is added below.
	if len(pts) > 1 && pointsClose(pts[0], pts[len(pts)-1], connectToleranceCm) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 2 {
		return nil, false
	}

	bulged := false
	for i, b := range lw.Bulges {
		if i < len(lw.Vertices) && b != 0 {
			bulged = true
			break
		}
	}

	segs := make([]geometry.Segment, 0, len(pts))
	for i := range pts {
		next := pts[(i+1)%len(pts)]
		if i == len(pts)-1 && len(pts) == 2 {
			break // two vertices make one edge, not a loop
		}
		segs = append(segs, geometry.Segment{A: pts[i], B: next})
	}
	return segs, bulged
}

// chainSegments connects individual segments into closed corner loops.
// tolerance is the maximum distance between endpoints to consider them
// connected. Segments left in open chains are counted in the second return.
func chainSegments(segs []geometry.Segment, tolerance float64) ([][]geometry.Point2D, int) {
	if len(segs) == 0 {
		return nil, 0
	}

	used := make([]bool, len(segs))
	var loops [][]geometry.Point2D
	openCount := 0

	for {
		// Find the first unused segment
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []geometry.Point2D{segs[startIdx].A, segs[startIdx].B}
		chainLen := 1
		used[startIdx] = true

		// Try to extend the chain
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.A, tolerance) {
					chain = append(chain, seg.B)
					used[i] = true
					chainLen++
					changed = true
					break
				}
				if pointsClose(tail, seg.B, tolerance) {
					chain = append(chain, seg.A)
					used[i] = true
					chainLen++
					changed = true
					break
				}
			}
		}

		// Only chains that return to their start become loops.
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			loops = append(loops, chain[:len(chain)-1])
		} else {
			openCount += chainLen
		}
	}

	// Sort loops by area (largest first) for consistent ordering
	sort.Slice(loops, func(i, j int) bool {
		return geometry.Ring(loops[i]).Area() > geometry.Ring(loops[j]).Area()
	})

	return loops, openCount
}
