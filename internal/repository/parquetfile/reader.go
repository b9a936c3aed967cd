// Package parquetfile reads project tables stored as Parquet files.
//
// Every leaf column becomes a property named by its dotted path. An "id" column sets the feature ID and
// latitude/longitude (or lat/lon) columns become a Point geometry.
package parquetfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/twpayne/go-geom"

	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/geo"
)

const readBatch = 1000

// columns maps leaf column indexes to property names.
type columns struct {
	names     []string
	id        int
	latitude  int
	longitude int
}

func resolveColumns(pf *parquet.File) columns {
	paths := pf.Schema().Columns()
	cols := columns{names: make([]string, len(paths)), id: -1, latitude: -1, longitude: -1}
	for i, path := range paths {
		if len(path) == 0 {
			continue
		}
		// nested group leaves keep their full dotted path
		name := strings.Join(path, ".")
		cols.names[i] = name
		switch strings.ToLower(name) {
		case "id":
			cols.id = i
		case "latitude", "lat":
			cols.latitude = i
		case "longitude", "lon", "lng":
			cols.longitude = i
		}
	}
	return cols
}

// ReadFile reads a Parquet file into a collection in row order.
func ReadFile(path string) (*feature.Collection, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	return Read(f, stat.Size())
}

// Read reads a Parquet file of the given size from r.
func Read(r io.ReaderAt, size int64) (*feature.Collection, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet: %w", domain.ErrInvalidDataset, err)
	}

	cols := resolveColumns(pf)
	features := make([]*feature.Feature, 0, pf.NumRows())

	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(rg, cols, &features); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDataset, err)
		}
	}
	return feature.NewCollection(features), nil
}

func readRowGroup(rg parquet.RowGroup, cols columns, features *[]*feature.Feature) error {
	rows := parquet.NewRowGroupReader(rg)
	defer func() { _ = rows.Close() }()
	buf := make([]parquet.Row, readBatch)

	for {
		cnt, readErr := rows.ReadRows(buf)
		for i := 0; i < cnt; i++ {
			*features = append(*features, rowToFeature(buf[i], cols, len(*features)))
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read rows: %w", readErr)
		}
	}
}

// rowToFeature builds a feature from a generic row. seq is the row number,
// used as the ID when the table has no id column.
func rowToFeature(row parquet.Row, cols columns, seq int) *feature.Feature {
	f := &feature.Feature{Properties: make(feature.Properties)}
	var lat, lon float64
	var hasLat, hasLon bool

	for _, v := range row {
		c := v.Column()
		if c < 0 || c >= len(cols.names) || v.IsNull() {
			continue
		}
		switch c {
		case cols.id:
			f.ID = v.String()
		case cols.latitude:
			lat, hasLat = numeric(v)
		case cols.longitude:
			lon, hasLon = numeric(v)
		default:
			name := cols.names[c]
			// repeated columns carry one value per element
			if prev, ok := f.Properties[name]; ok {
				f.Properties[name] = prev + ", " + v.String()
			} else {
				f.Properties[name] = v.String()
			}
		}
	}

	if f.ID == "" {
		f.ID = strconv.Itoa(seq)
	}
	if hasLat && hasLon && geo.ValidateCoordinates(lat, lon) {
		f.Geometry = geom.NewPoint(geom.XY).MustSetCoords(geom.Coord{lon, lat})
	}
	return f
}

func numeric(v parquet.Value) (float64, bool) {
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), true
	case parquet.Float:
		return float64(v.Float()), true
	case parquet.Int32:
		return float64(v.Int32()), true
	case parquet.Int64:
		return float64(v.Int64()), true
	default:
		f, err := strconv.ParseFloat(v.String(), 64)
		return f, err == nil
	}
}
