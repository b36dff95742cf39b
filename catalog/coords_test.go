package catalog

import "testing"

func TestParseCoord(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"-7.3273", -7.3273, true},
		{"-7,3273", -7.3273, true}, // comma decimal separator
		{"110.4649", 110.4649, true},
		{"  110.4649  ", 110.4649, true},
		{"0", 0, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"7.32.73", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseCoord(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseCoord(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseCoord(%q) = %f, want %f", tt.input, got, tt.want)
		}
	}
}

func TestParseCoordCommaEquivalence(t *testing.T) {
	// "-7,32" and "-7.32" must parse to the same value
	a, okA := ParseCoord("-7,32")
	b, okB := ParseCoord("-7.32")
	if !okA || !okB {
		t.Fatal("both forms should parse")
	}
	if a != b {
		t.Errorf("comma form parsed to %f, dot form to %f", a, b)
	}
}

func TestParseLatLon(t *testing.T) {
	lat, lon, ok := ParseLatLon("-7.3273", "110,4649")
	if !ok {
		t.Fatal("expected valid pair")
	}
	if lat != -7.3273 || lon != 110.4649 {
		t.Errorf("got %f, %f", lat, lon)
	}

	// one bad half invalidates the pair
	if _, _, ok := ParseLatLon("-7.3273", ""); ok {
		t.Error("missing longitude should not be mappable")
	}
	if _, _, ok := ParseLatLon("x", "110.4649"); ok {
		t.Error("bad latitude should not be mappable")
	}
	if _, _, ok := ParseLatLon("", ""); ok {
		t.Error("empty pair should not be mappable")
	}
}
