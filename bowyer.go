package triangler

// BowyerWatson is an incremental triangulator. The bounding rectangle of the
// points is split in two triangles and every point is inserted in turn,
// re-triangulating the cavity formed by the triangles whose circumcircle
// contains it. When the rectangle corners are part of the input, the
// triangulation covers the whole rectangle. Every insertion scans all the
// triangles, so it suits small point sets; Delaunay is the default.
type BowyerWatson struct{}

type node struct {
	x, y float64
}

type edge struct {
	a, b int
}

// undirected returns the edge with its end points in ascending order.
func (e edge) undirected() edge {
	if e.a > e.b {
		return edge{e.b, e.a}
	}
	return e
}

// triangle is stored with a positive orientation.
type triangle struct {
	nodes [3]int
}

type bwMesh struct {
	verts     []node
	triangles []triangle
}

// orient is twice the signed area of the abc triangle.
func orient(a, b, c node) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// inCircle reports whether d lies strictly inside the circumcircle of the
// positively oriented abc triangle.
func inCircle(a, b, c, d node) bool {
	adx, ady := a.x-d.x, a.y-d.y
	bdx, bdy := b.x-d.x, b.y-d.y
	cdx, cdy := c.x-d.x, c.y-d.y

	det := (adx*adx+ady*ady)*(bdx*cdy-cdx*bdy) -
		(bdx*bdx+bdy*bdy)*(adx*cdy-cdx*ady) +
		(cdx*cdx+cdy*cdy)*(adx*bdy-bdx*ady)
	return det > 0
}

// newTriangle creates a positively oriented triangle.
func (d *bwMesh) newTriangle(p0, p1, p2 int) triangle {
	if orient(d.verts[p0], d.verts[p1], d.verts[p2]) < 0 {
		p1, p2 = p2, p1
	}
	return triangle{nodes: [3]int{p0, p1, p2}}
}

// insert adds the vertex k, replacing the triangles whose circumcircle
// contains it with a fan around k.
func (d *bwMesh) insert(k int) {
	var (
		p       = d.verts[k]
		edges   []edge
		temps   = make([]triangle, 0, len(d.triangles)+2)
		counter = make(map[edge]int)
	)

	for _, t := range d.triangles {
		a, b, c := d.verts[t.nodes[0]], d.verts[t.nodes[1]], d.verts[t.nodes[2]]
		if inCircle(a, b, c, p) {
			for i := 0; i < 3; i++ {
				e := edge{t.nodes[i], t.nodes[(i+1)%3]}
				edges = append(edges, e)
				counter[e.undirected()]++
			}
		} else {
			temps = append(temps, t)
		}
	}

	// Edges shared by two cavity triangles are interior and get dropped.
	for _, e := range edges {
		if counter[e.undirected()] != 1 {
			continue
		}
		// A vertex lying on the cavity border is collinear with that border edge.
		if orient(d.verts[e.a], d.verts[e.b], p) <= 0 {
			continue
		}
		temps = append(temps, triangle{nodes: [3]int{e.a, e.b, k}})
	}
	d.triangles = temps
}

// Triangulate returns the Delaunay triangles of the point set as index
// triples. Duplicate points are triangulated once, using their first index.
// Fewer than three points, or points without a two dimensional extent, yield
// no triangles.
func (BowyerWatson) Triangulate(points []Point) ([]Triangle, error) {
	if len(points) < 3 {
		return nil, nil
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = Min(minX, p.X), Max(maxX, p.X)
		minY, maxY = Min(minY, p.Y), Max(maxY, p.Y)
	}
	if minX == maxX || minY == maxY {
		return nil, nil
	}

	n := len(points)
	d := &bwMesh{verts: make([]node, n, n+4)}
	first := make(map[Point]int, n)
	for i, p := range points {
		d.verts[i] = node{float64(p.X), float64(p.Y)}
		if _, ok := first[p]; !ok {
			first[p] = i
		}
	}

	// Seed with the bounding rectangle. Corners missing from the input are
	// added as helper vertices and pruned at the end.
	var (
		corners = [4]Point{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
		seeds   [4]int
		seeded  = make(map[int]bool, 4)
	)
	for i, c := range corners {
		if j, ok := first[c]; ok {
			seeds[i] = j
		} else {
			seeds[i] = len(d.verts)
			d.verts = append(d.verts, node{float64(c.X), float64(c.Y)})
		}
		seeded[seeds[i]] = true
	}
	d.triangles = []triangle{
		d.newTriangle(seeds[0], seeds[1], seeds[2]),
		d.newTriangle(seeds[0], seeds[2], seeds[3]),
	}

	for i, p := range points {
		if first[p] != i || seeded[i] {
			continue
		}
		d.insert(i)
	}

	triangles := make([]Triangle, 0, len(d.triangles))
	for _, t := range d.triangles {
		if t.nodes[0] >= n || t.nodes[1] >= n || t.nodes[2] >= n {
			continue
		}
		triangles = append(triangles, Triangle(t.nodes))
	}
	return triangles, nil
}
