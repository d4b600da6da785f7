package triangler

import (
	"fmt"
	"image"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// MeshFeatureCollection exports the triangulation as GeoJSON, one polygon per
// triangle in image coordinates. When src is not nil every feature carries
// the centroid color of its triangle as a "fill" hex property.
func MeshFeatureCollection(points []Point, triangles []Triangle, src *image.NRGBA) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, t := range triangles {
		ring := make(orb.Ring, 0, 4)
		for _, idx := range t {
			ring = append(ring, orb.Point{float64(points[idx].X), float64(points[idx].Y)})
		}
		ring = append(ring, ring[0])

		poly := orb.Polygon{ring}
		f := geojson.NewFeature(poly)
		f.Properties["index"] = i
		f.Properties["area"] = planar.Area(poly)
		if src != nil {
			c := centroidColor(src, points, t)
			f.Properties["fill"] = hexColor(c.R, c.G, c.B)
		}
		fc.Append(f)
	}
	return fc
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
