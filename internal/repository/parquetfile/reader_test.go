package parquetfile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/twpayne/go-geom"

	"github.com/kailas-cloud/projectsearch/internal/domain"
)

type projectRow struct {
	ID        string  `parquet:"id"`
	Name      string  `parquet:"Project_Na"`
	City      *string `parquet:"NAME,optional"`
	Latitude  float64 `parquet:"latitude"`
	Longitude float64 `parquet:"longitude"`
	Budget    int64   `parquet:"Budget"`
}

type bareRow struct {
	Name string `parquet:"Project_Na"`
}

type location struct {
	City  string `parquet:"city"`
	State string `parquet:"state"`
}

type nestedRow struct {
	Name     string   `parquet:"Project_Na"`
	Location location `parquet:"location"`
	Tags     []string `parquet:"tags"`
}

func strPtr(s string) *string { return &s }

func writeRows[T any](t *testing.T, rows []T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.parquet")
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet: %v", err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := writeRows(t, []projectRow{
		{ID: "mb-1", Name: "Miami Beach Flood Protection", City: strPtr("Miami Beach"), Latitude: 25.7617, Longitude: -80.1918, Budget: 1250000},
		{ID: "cg-2", Name: "Coral Gables Green Infrastructure", City: nil, Latitude: 25.7917, Longitude: -80.1318},
	})

	col, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Len() != 2 {
		t.Fatalf("want 2 features, got %d", col.Len())
	}

	first := col.Features[0]
	if first.ID != "mb-1" {
		t.Errorf("ID = %q", first.ID)
	}
	if v, _ := first.Property("Project_Na"); v != "Miami Beach Flood Protection" {
		t.Errorf("Project_Na = %q", v)
	}
	if v, _ := first.Property("NAME"); v != "Miami Beach" {
		t.Errorf("NAME = %q", v)
	}
	if v, _ := first.Property("Budget"); v != "1250000" {
		t.Errorf("Budget = %q", v)
	}
	if _, ok := first.Property("latitude"); ok {
		t.Error("coordinate columns must not be copied into properties")
	}
	p, ok := first.Geometry.(*geom.Point)
	if !ok {
		t.Fatalf("want *geom.Point, got %T", first.Geometry)
	}
	if p.X() != -80.1918 || p.Y() != 25.7617 {
		t.Errorf("unexpected coords (%f, %f)", p.X(), p.Y())
	}

	second := col.Features[1]
	if second.ID != "cg-2" {
		t.Errorf("ID = %q", second.ID)
	}
	if _, ok := second.Property("NAME"); ok {
		t.Error("null column must be absent")
	}
}

func TestReadFile_NoIDOrCoordinates(t *testing.T) {
	path := writeRows(t, []bareRow{{Name: "A"}, {Name: "B"}})

	col, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, f := range col.Features {
		if f.ID != []string{"0", "1"}[i] {
			t.Errorf("feature %d: ID = %q", i, f.ID)
		}
		if f.Geometry != nil {
			t.Errorf("feature %d: want nil geometry", i)
		}
	}
}

func TestReadFile_NestedColumns(t *testing.T) {
	path := writeRows(t, []nestedRow{{
		Name:     "Doral Stormwater Upgrade",
		Location: location{City: "Doral", State: "FL"},
		Tags:     []string{"drainage", "pumps"},
	}})

	col, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Len() != 1 {
		t.Fatalf("want 1 feature, got %d", col.Len())
	}

	f := col.Features[0]
	tests := []struct{ key, want string }{
		{"Project_Na", "Doral Stormwater Upgrade"},
		{"location.city", "Doral"},
		{"location.state", "FL"},
		{"tags", "drainage, pumps"},
	}
	for _, tc := range tests {
		if got, _ := f.Property(tc.key); got != tc.want {
			t.Errorf("%s = %q, want %q", tc.key, got, tc.want)
		}
	}
	if v, ok := f.Property("location"); ok {
		t.Errorf("group name must not collect leaf values, got %q", v)
	}
}

func TestReadFile_ManyRowGroups(t *testing.T) {
	rows := make([]bareRow, 3*readBatch+7)
	for i := range rows {
		rows[i].Name = "project"
	}
	path := filepath.Join(t.TempDir(), "projects.parquet")
	if err := parquet.WriteFile(path, rows, parquet.MaxRowsPerRowGroup(readBatch)); err != nil {
		t.Fatalf("write parquet: %v", err)
	}

	col, err := ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if col.Len() != len(rows) {
		t.Fatalf("want %d features, got %d", len(rows), col.Len())
	}
	if last := col.Features[len(rows)-1]; last.ID != strconv.Itoa(len(rows)-1) {
		t.Errorf("last ID = %q", last.ID)
	}
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.parquet"))
	if !errors.Is(err, domain.ErrDatasetNotFound) {
		t.Fatalf("want ErrDatasetNotFound, got %v", err)
	}
}

func TestRead_NotParquet(t *testing.T) {
	data := []byte("definitely not parquet")
	_, err := Read(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, domain.ErrInvalidDataset) {
		t.Fatalf("want ErrInvalidDataset, got %v", err)
	}
}

