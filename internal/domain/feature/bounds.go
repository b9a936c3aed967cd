package feature

import "github.com/twpayne/go-geom"

// Bounds is a longitude/latitude bounding box.
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BoundsOf returns the box enclosing every non-nil geometry in features.
// ok is false when no feature carries a geometry.
func BoundsOf(features []*Feature) (b Bounds, ok bool) {
	gb := geom.NewBounds(geom.XY)
	for _, f := range features {
		if f == nil || f.Geometry == nil {
			continue
		}
		gb.Extend(f.Geometry)
		ok = true
	}
	if !ok || gb.IsEmpty() {
		return Bounds{}, false
	}
	return Bounds{
		MinLon: gb.Min(0),
		MinLat: gb.Min(1),
		MaxLon: gb.Max(0),
		MaxLat: gb.Max(1),
	}, true
}

// Slice returns the box as [minLon, minLat, maxLon, maxLat].
func (b Bounds) Slice() []float64 {
	return []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}
