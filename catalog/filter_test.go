package catalog

import (
	"reflect"
	"testing"
)

func testSpots() []*Spot {
	return []*Spot{
		{ID: "1", Name: "Warung Bu Sri", Category: "umkm", SubCategory: "Kuliner"},
		{ID: "2", Name: "Curug Lawe", Category: "wisata", SubCategory: "Alam"},
		{ID: "3", Name: "Balai Desa", Category: "fasum", SubCategory: "Pemerintahan"},
		{ID: "4", Name: "Kopi Gedangan", Category: "umkm", SubCategory: "Kuliner"},
		{ID: "5", Name: "Toko Kelontong", Category: "umkm", SubCategory: ""},
		{ID: "6", Name: "Tanpa Kategori", Category: "", SubCategory: ""},
	}
}

func TestFilterCategoryMembership(t *testing.T) {
	spots := testSpots()

	got := Apply(spots, Filter{Categories: []string{"umkm"}})
	if len(got) != 3 {
		t.Fatalf("expected 3 umkm spots, got %d", len(got))
	}
	for _, s := range got {
		if s.Category != "umkm" {
			t.Errorf("spot %s has category %q", s.ID, s.Category)
		}
	}

	// no active categories means nothing passes
	if got := Apply(spots, Filter{}); len(got) != 0 {
		t.Errorf("empty category set should match nothing, got %d", len(got))
	}

	// a spot with no category never matches, even if "" is requested
	got = Apply(spots, Filter{Categories: []string{""}})
	if len(got) != 0 {
		t.Errorf("empty-category spot should never match, got %d", len(got))
	}
}

func TestFilterSubCategories(t *testing.T) {
	spots := testSpots()

	// empty sub-category set is no constraint
	got := Apply(spots, Filter{Categories: []string{"umkm"}})
	if len(got) != 3 {
		t.Fatalf("expected 3, got %d", len(got))
	}

	got = Apply(spots, Filter{Categories: []string{"umkm"}, SubCategories: []string{"Kuliner"}})
	if len(got) != 2 {
		t.Fatalf("expected 2 kuliner spots, got %d", len(got))
	}

	// the spot with a blank sub-category is excluded once subs are active
	for _, s := range got {
		if s.ID == "5" {
			t.Error("blank sub-category should not pass an active sub filter")
		}
	}
}

func TestFilterQuery(t *testing.T) {
	spots := testSpots()
	all := []string{"umkm", "wisata", "fasum"}

	tests := []struct {
		query string
		want  []string
	}{
		{"warung", []string{"1"}},
		{"WARUNG", []string{"1"}}, // case-insensitive
		{"kuliner", []string{"1", "4"}},
		{"wisata", []string{"2"}}, // matches on category text
		{"  curug  ", []string{"2"}},
		{"", []string{"1", "2", "3", "4", "5"}},
		{"zzz", nil},
	}

	for _, tt := range tests {
		got := Apply(spots, Filter{Categories: all, Query: tt.query})
		var ids []string
		for _, s := range got {
			ids = append(ids, s.ID)
		}
		if !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("query %q: got %v, want %v", tt.query, ids, tt.want)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	spots := testSpots()
	got := Apply(spots, Filter{Categories: []string{"umkm", "fasum"}})

	var ids []string
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	want := []string{"1", "3", "4", "5"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order changed: got %v, want %v", ids, want)
	}
}

func TestFilterIdempotent(t *testing.T) {
	spots := testSpots()
	f := Filter{Categories: []string{"umkm"}, Query: "k"}

	once := Apply(spots, f)
	twice := Apply(once, f)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Errorf("position %d differs after second pass", i)
		}
	}
}

func TestCategories(t *testing.T) {
	got := Categories(testSpots())
	want := []string{"umkm", "wisata", "fasum"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSubCategories(t *testing.T) {
	spots := testSpots()

	got := SubCategories(spots, "umkm")
	if !reflect.DeepEqual(got, []string{"Kuliner"}) {
		t.Errorf("umkm subs: got %v", got)
	}

	// empty category spans the whole catalog
	got = SubCategories(spots, "")
	want := []string{"Kuliner", "Alam", "Pemerintahan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("all subs: got %v, want %v", got, want)
	}
}
