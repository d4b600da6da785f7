package triangler

import (
	"github.com/fogleman/delaunay"
	"github.com/pkg/errors"
)

// Triangle holds the indices of its three vertices in the point set it was built from.
type Triangle [3]int

// Triangulator builds a triangulation over a point set.
type Triangulator interface {
	Triangulate(points []Point) ([]Triangle, error)
}

// Delaunay triangulates with the sweep-hull algorithm of
// github.com/fogleman/delaunay in O(n log n). The triangles cover the convex
// hull of the points and are returned positively oriented.
type Delaunay struct{}

// distinct returns the points without duplicates together with the index of
// the first occurrence of each of them in points.
func distinct(points []Point) ([]Point, []int) {
	var (
		uniq  = make([]Point, 0, len(points))
		index = make([]int, 0, len(points))
		seen  = make(map[Point]struct{}, len(points))
	)
	for i, p := range points {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
		index = append(index, i)
	}
	return uniq, index
}

// collinear reports whether all the points lie on a single line.
func collinear(points []Point) bool {
	if len(points) < 3 {
		return true
	}
	a, b := points[0], points[1]
	for _, c := range points[2:] {
		if int64(b.X-a.X)*int64(c.Y-a.Y)-int64(b.Y-a.Y)*int64(c.X-a.X) != 0 {
			return false
		}
	}
	return true
}

// Triangulate returns the Delaunay triangles of the point set as index
// triples. Duplicate points are triangulated once, using their first index.
// Fewer than three distinct points, or collinear points, yield no triangles.
// Should the sweep leave a point out of the mesh, the set is triangulated
// again with BowyerWatson.
func (Delaunay) Triangulate(points []Point) ([]Triangle, error) {
	uniq, index := distinct(points)
	if collinear(uniq) {
		return nil, nil
	}

	pts := make([]delaunay.Point, len(uniq))
	for i, p := range uniq {
		pts[i] = delaunay.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, errors.Wrapf(err, "triangulate %d points", len(uniq))
	}

	var (
		used      = make([]bool, len(uniq))
		triangles = make([]Triangle, 0, len(tri.Triangles)/3)
	)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		i0, i1, i2 := tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]
		o := orient(toNode(uniq[i0]), toNode(uniq[i1]), toNode(uniq[i2]))
		if o == 0 {
			continue
		}
		if o < 0 {
			i1, i2 = i2, i1
		}
		used[i0], used[i1], used[i2] = true, true, true
		triangles = append(triangles, Triangle{index[i0], index[i1], index[i2]})
	}

	for _, ok := range used {
		if !ok {
			return BowyerWatson{}.Triangulate(points)
		}
	}
	return triangles, nil
}

func toNode(p Point) node {
	return node{float64(p.X), float64(p.Y)}
}
