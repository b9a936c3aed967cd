// Package feature models the geographic records the search engine reads.
package feature

import "github.com/twpayne/go-geom"

// Properties is a feature's property bag. A key missing from the map is absent.
type Properties map[string]string

// Feature is a single geographic record. It is read-only once loaded.
type Feature struct {
	ID         string
	Geometry   geom.T
	Properties Properties
}

// Property returns the raw value stored under key.
func (f *Feature) Property(key string) (string, bool) {
	if f == nil || f.Properties == nil {
		return "", false
	}
	v, ok := f.Properties[key]
	return v, ok
}

// Collection is an ordered sequence of features.
// A nil Features slice means the source had no feature sequence at all.
type Collection struct {
	Features []*Feature
}

// NewCollection wraps features into a collection without copying them.
func NewCollection(features []*Feature) *Collection {
	return &Collection{Features: features}
}

// Len returns the number of features. Safe on a nil collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Features)
}

// Concat joins collections in argument order. Nil collections are skipped.
func Concat(cols ...*Collection) *Collection {
	total := 0
	for _, c := range cols {
		total += c.Len()
	}
	out := make([]*Feature, 0, total)
	for _, c := range cols {
		if c == nil {
			continue
		}
		out = append(out, c.Features...)
	}
	return &Collection{Features: out}
}
