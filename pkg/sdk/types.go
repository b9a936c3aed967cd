package projectsearch

import (
	"github.com/twpayne/go-geom"

	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/geo"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/field"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
)

// Hit is one ranked project.
type Hit struct {
	ID    string
	Score int
	// Name and City are the raw values of the first present alias.
	Name        string
	City        string
	CityDisplay string
	Properties  map[string]string
	Geometry    geom.T // nil when the feature has no geometry
	// DistanceMeters is set by SearchNear when the feature has a geometry.
	DistanceMeters *float64
}

// Point is a WGS84 reference location.
type Point struct {
	Lat float64
	Lon float64
}

func hitsFromMatches(matches []result.Match, near *Point) []Hit {
	hits := make([]Hit, 0, len(matches))
	for i := range matches {
		hits = append(hits, hitFromMatch(&matches[i], near))
	}
	return hits
}

func hitFromMatch(m *result.Match, near *Point) Hit {
	f := m.Feature()
	city := field.Resolve(f.Properties, field.Aliases(field.City))

	props := make(map[string]string, len(f.Properties))
	for k, v := range f.Properties {
		props[k] = v
	}

	h := Hit{
		ID:          f.ID,
		Score:       m.Score(),
		Name:        field.Resolve(f.Properties, field.Aliases(field.ProjectName)),
		City:        city,
		CityDisplay: feature.FormatCityName(city),
		Properties:  props,
		Geometry:    f.Geometry,
	}
	if near != nil {
		if d, ok := geo.DistanceTo(f.Geometry, near.Lat, near.Lon); ok {
			h.DistanceMeters = &d
		}
	}
	return h
}
