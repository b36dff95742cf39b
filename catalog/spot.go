package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mrz1836/go-sanitize"
)

// Spot is one point of interest from the published sheet. A spot is immutable
// once parsed; a new feed fetch produces a whole new list, never an in-place
// update of old spots.
type Spot struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	SubCategory string  `json:"sub_category,omitempty"`
	Latitude    string  `json:"latitude,omitempty"`  // raw cell value
	Longitude   string  `json:"longitude,omitempty"` // raw cell value
	Lat         float64 `json:"lat,omitempty"`
	Lon         float64 `json:"lon,omitempty"`
	Mappable    bool    `json:"mappable"`
	Address     string  `json:"address,omitempty"`
	Hours       string  `json:"hours,omitempty"`
	Contact     string  `json:"contact,omitempty"`
	Description string  `json:"description,omitempty"`
	MapsURL     string  `json:"maps_url,omitempty"`
	// Extra holds sheet columns the server does not interpret
	Extra map[string]string `json:"extra,omitempty"`
}

// Sheet column names, as published by the village spreadsheet.
const (
	colName        = "nama_spot"
	colCategory    = "kategori_utama"
	colSubCategory = "sub_kategori"
	colLatitude    = "latitude"
	colLongitude   = "longitude"
	colAddress     = "alamat"
	colHours       = "jam_operasional"
	colContact     = "kontak"
	colDescription = "deskripsi"
	colMapsURL     = "link_gmaps"
)

// NewSpot builds a Spot from a header-keyed row. Known columns land in named
// fields, anything else goes in the Extra bag untouched by the server.
func NewSpot(row map[string]string) *Spot {
	s := &Spot{
		ID:    uuid.New().String(),
		Extra: map[string]string{},
	}

	for col, val := range row {
		switch col {
		case colName:
			s.Name = sanitize.SingleLine(sanitize.XSS(val))
		case colCategory:
			s.Category = sanitize.SingleLine(sanitize.XSS(val))
		case colSubCategory:
			s.SubCategory = sanitize.SingleLine(sanitize.XSS(val))
		case colLatitude:
			s.Latitude = strings.TrimSpace(val)
		case colLongitude:
			s.Longitude = strings.TrimSpace(val)
		case colAddress:
			s.Address = sanitize.XSS(val)
		case colHours:
			s.Hours = sanitize.SingleLine(sanitize.XSS(val))
		case colContact:
			s.Contact = sanitize.SingleLine(sanitize.XSS(val))
		case colDescription:
			s.Description = sanitize.XSS(val)
		case colMapsURL:
			// outbound link is passed through, not rewritten
			s.MapsURL = strings.TrimSpace(val)
		default:
			if v := strings.TrimSpace(val); v != "" {
				s.Extra[col] = sanitize.XSS(v)
			}
		}
	}

	s.Lat, s.Lon, s.Mappable = ParseLatLon(s.Latitude, s.Longitude)

	return s
}

// Empty reports whether the row carried no usable values at all.
func (s *Spot) Empty() bool {
	return s.Name == "" && s.Category == "" && s.Latitude == "" && s.Longitude == "" && len(s.Extra) == 0
}
