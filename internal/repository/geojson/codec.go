// Package geojson decodes and encodes GeoJSON feature collections.
package geojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
)

const featureCollectionType = "FeatureCollection"

var jsonNull = []byte("null")

// collectionDTO is the wire form of a FeatureCollection.
type collectionDTO struct {
	Type     string            `json:"type"`
	Features []json.RawMessage `json:"features"`
}

// featureDTO is the wire form of a Feature. The id may be a string or a number.
type featureDTO struct {
	Type       string                     `json:"type,omitempty"`
	ID         json.RawMessage            `json:"id,omitempty"`
	Geometry   json.RawMessage            `json:"geometry"`
	Properties map[string]json.RawMessage `json:"properties"`
}

// Decode reads a FeatureCollection. A document without a features member
// yields a collection with nil Features.
func Decode(r io.Reader) (*feature.Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read geojson: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal parses a FeatureCollection from data.
func Unmarshal(data []byte) (*feature.Collection, error) {
	var dto collectionDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDataset, err)
	}
	if dto.Type != "" && dto.Type != featureCollectionType {
		return nil, fmt.Errorf("%w: type %q is not %s", domain.ErrInvalidDataset, dto.Type, featureCollectionType)
	}
	if dto.Features == nil {
		return &feature.Collection{}, nil
	}

	features := make([]*feature.Feature, len(dto.Features))
	for i, raw := range dto.Features {
		f, err := decodeFeature(raw, i)
		if err != nil {
			return nil, fmt.Errorf("%w: feature %d: %w", domain.ErrInvalidDataset, i, err)
		}
		features[i] = f
	}
	return feature.NewCollection(features), nil
}

func decodeFeature(raw json.RawMessage, index int) (*feature.Feature, error) {
	var dto featureDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return nil, err //nolint:wrapcheck // wrapped by caller with feature index
	}

	f := &feature.Feature{Properties: make(feature.Properties, len(dto.Properties))}

	if id, ok := scalarText(dto.ID); ok {
		f.ID = id
	} else {
		f.ID = strconv.Itoa(index)
	}

	if len(dto.Geometry) > 0 && !bytes.Equal(bytes.TrimSpace(dto.Geometry), jsonNull) {
		var g geom.T
		if err := geomjson.Unmarshal(dto.Geometry, &g); err != nil {
			return nil, fmt.Errorf("geometry: %w", err)
		}
		f.Geometry = g
	}

	for k, v := range dto.Properties {
		if text, ok := scalarText(v); ok {
			f.Properties[k] = text
		}
	}
	return f, nil
}

// scalarText returns the text form of a JSON value. Strings are unquoted,
// other values keep their JSON text. null and missing values are absent.
func scalarText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	return string(raw), true
}

// outFeatureDTO is the encoded form of a Feature.
type outFeatureDTO struct {
	Type       string             `json:"type"`
	ID         string             `json:"id,omitempty"`
	Geometry   json.RawMessage    `json:"geometry"`
	Properties feature.Properties `json:"properties"`
}

type outCollectionDTO struct {
	Type     string          `json:"type"`
	Features []outFeatureDTO `json:"features"`
}

// EncodeGeometry returns the GeoJSON geometry object for g, or null for nil.
func EncodeGeometry(g geom.T) (json.RawMessage, error) {
	if g == nil {
		return json.RawMessage(jsonNull), nil
	}
	data, err := geomjson.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode geometry: %w", err)
	}
	return data, nil
}

// Marshal encodes features as a FeatureCollection.
func Marshal(features []*feature.Feature) ([]byte, error) {
	out := outCollectionDTO{Type: featureCollectionType, Features: make([]outFeatureDTO, 0, len(features))}
	for _, f := range features {
		if f == nil {
			continue
		}
		g, err := EncodeGeometry(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", f.ID, err)
		}
		props := f.Properties
		if props == nil {
			props = feature.Properties{}
		}
		out.Features = append(out.Features, outFeatureDTO{
			Type: "Feature", ID: f.ID, Geometry: g, Properties: props,
		})
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}
	return data, nil
}

// Encode writes features as a FeatureCollection to w.
func Encode(w io.Writer, features []*feature.Feature) error {
	data, err := Marshal(features)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}
