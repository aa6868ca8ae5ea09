package geom

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ByteArena/poly2tri-go"
)

// ErrTriangulation is returned when a point set cannot be triangulated.
var ErrTriangulation = errors.New("triangulation failed")

// Delaunay returns a constrained Delaunay triangulation of the points, with the convex hull as boundary, as triples
// of indices into pts. Duplicate points are ignored.
func Delaunay[S Space](pts []Point[S]) (tris [][3]int, err error) {
	index := make(map[[2]float64]int, len(pts))
	uniq := make([]int, 0, len(pts))
	for i, p := range pts {
		key := [2]float64{p.X, p.Y}
		if _, ok := index[key]; !ok {
			index[key] = i
			uniq = append(uniq, i)
		}
	}
	if len(uniq) < 3 {
		return nil, fmt.Errorf("%w: need at least 3 distinct points", ErrTriangulation)
	}

	hull := convexHull(pts, uniq)
	poly := make(Polygon[S], len(hull))
	for k, i := range hull {
		poly[k] = pts[i]
	}
	if len(hull) < 3 || poly.Area() < Epsilon {
		return nil, fmt.Errorf("%w: points are collinear", ErrTriangulation)
	}
	onHull := make(map[int]bool, len(hull))
	contour := make([]*poly2tri.Point, 0, len(hull))
	for _, i := range hull {
		onHull[i] = true
		contour = append(contour, poly2tri.NewPoint(pts[i].X, pts[i].Y))
	}

	defer func() {
		if r := recover(); r != nil {
			tris, err = nil, fmt.Errorf("%w: %v", ErrTriangulation, r)
		}
	}()
	swctx := poly2tri.NewSweepContext(contour, false)
	for _, i := range uniq {
		if !onHull[i] {
			swctx.AddPoint(poly2tri.NewPoint(pts[i].X, pts[i].Y))
		}
	}
	swctx.Triangulate()

	for _, tr := range swctx.GetTriangles() {
		var t [3]int
		for k := 0; k < 3; k++ {
			i, ok := index[[2]float64{tr.Points[k].X, tr.Points[k].Y}]
			if !ok {
				return nil, fmt.Errorf("%w: unknown vertex", ErrTriangulation)
			}
			t[k] = i
		}
		if orient(pts[t[0]], pts[t[1]], pts[t[2]]) < 0.0 {
			t[1], t[2] = t[2], t[1]
		}
		tris = append(tris, t)
	}
	return tris, nil
}

// convexHull returns the counter clockwise convex hull of the indexed points by the monotone chain algorithm,
// keeping collinear points on the boundary.
func convexHull[S Space](pts []Point[S], idx []int) []int {
	sorted := append([]int{}, idx...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := pts[sorted[i]], pts[sorted[j]]
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})

	hull := make([]int, 0, 2*len(sorted))
	for _, i := range sorted {
		for 2 <= len(hull) && orient(pts[hull[len(hull)-2]], pts[hull[len(hull)-1]], pts[i]) < 0.0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	lower := len(hull) + 1
	for k := len(sorted) - 2; 0 <= k; k-- {
		i := sorted[k]
		for lower <= len(hull) && orient(pts[hull[len(hull)-2]], pts[hull[len(hull)-1]], pts[i]) < 0.0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, i)
	}
	hull = hull[:len(hull)-1]

	// collinear input walks back over itself
	seen := make(map[int]bool, len(hull))
	out := hull[:0]
	for _, i := range hull {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}
	return out
}
