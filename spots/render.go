package spots

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"desa/app"
	"desa/boundary"
	"desa/catalog"
)

// Village centre, used before any marker exists.
const (
	centerLat = -7.3273
	centerLon = 110.4649
	zoomLevel = 14
)

// Basemap tiles for the light and dark themes.
const (
	tilesLight = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	tilesDark  = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
)

// renderMapPage renders the Leaflet map with filters and the visible list.
// Only mappable spots become markers; the list below keeps everything.
func renderMapPage(all, visible []*catalog.Spot, f catalog.Filter) string {
	var sb strings.Builder

	state := catalog.GetState()
	if state != catalog.StateLoaded {
		sb.WriteString(`<p class="empty">Memuat data spasial...</p>`)
		if state == catalog.StateEmpty {
			sb.WriteString(`<p class="empty">Belum ada data desa.</p>`)
		}
		return sb.String()
	}

	sb.WriteString(renderFilterForm("/", all, f))
	sb.WriteString(`<div id="map"></div>`)
	sb.WriteString(`<p id="presence"></p>`)
	sb.WriteString(renderMapScript(visible))

	sb.WriteString(fmt.Sprintf(`<p class="card-meta">Total: %d lokasi</p>`, len(visible)))
	sb.WriteString(renderSpotList(visible))

	return sb.String()
}

// renderListPage renders /spots without the map.
func renderListPage(all, visible []*catalog.Spot, f catalog.Filter) string {
	content := renderSpotList(visible)
	return app.Page(app.PageOpts{
		Search:  "/spots",
		Query:   f.Query,
		Filters: renderCategoryTags(all, f),
		Content: content,
		Empty:   "Tidak ditemukan",
	})
}

// renderFilterForm renders the category/sub-category checkboxes plus search.
func renderFilterForm(action string, all []*catalog.Spot, f catalog.Filter) string {
	var sb strings.Builder

	active := map[string]bool{}
	for _, c := range f.Categories {
		active[c] = true
	}
	activeSub := map[string]bool{}
	for _, s := range f.SubCategories {
		activeSub[s] = true
	}

	sb.WriteString(`<form class="search-bar" action="` + action + `" method="GET">`)
	sb.WriteString(`<input type="text" name="q" placeholder="Cari lokasi desa..." value="` + html.EscapeString(f.Query) + `">`)

	sb.WriteString(`<span class="card-tags">`)
	for _, cat := range catalog.Categories(all) {
		checked := ""
		if active[cat] {
			checked = " checked"
		}
		sb.WriteString(fmt.Sprintf(
			`<label class="tag"><input type="checkbox" name="category" value="%s"%s> %s</label>`,
			html.EscapeString(cat), checked, html.EscapeString(cat),
		))

		// sub-categories only matter inside an active primary category
		if !active[cat] {
			continue
		}
		for _, sub := range catalog.SubCategories(all, cat) {
			subChecked := ""
			if activeSub[sub] {
				subChecked = " checked"
			}
			sb.WriteString(fmt.Sprintf(
				`<label class="tag"><input type="checkbox" name="sub" value="%s"%s> %s</label>`,
				html.EscapeString(sub), subChecked, html.EscapeString(sub),
			))
		}
	}
	sb.WriteString(`</span>`)

	sb.WriteString(`<button type="submit">Saring</button>`)
	sb.WriteString(`</form>`)

	return sb.String()
}

// renderCategoryTags renders category links for the list page.
func renderCategoryTags(all []*catalog.Spot, f catalog.Filter) string {
	active := map[string]bool{}
	for _, c := range f.Categories {
		active[c] = true
	}

	var sb strings.Builder
	sb.WriteString(`<div class="card-tags">`)
	for _, cat := range catalog.Categories(all) {
		class := "tag"
		if active[cat] {
			class = "tag active"
		}
		sb.WriteString(fmt.Sprintf(`<a class="%s" href="/spots?category=%s">%s</a>`,
			class, html.EscapeString(cat), html.EscapeString(cat)))
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

// renderSpotList renders spot cards. Spots without usable coordinates still
// show up here even though the map drops them.
func renderSpotList(visible []*catalog.Spot) string {
	if len(visible) == 0 {
		return app.Empty("Tidak ditemukan")
	}

	var sb strings.Builder
	for _, s := range visible {
		sb.WriteString(renderSpotCard(s))
	}
	return app.List(sb.String())
}

// renderSpotCard renders a single spot card.
func renderSpotCard(s *catalog.Spot) string {
	sub := s.SubCategory
	if sub == "" {
		sub = "Umum"
	}

	meta := html.EscapeString(s.Category) + " &middot; " + html.EscapeString(sub)
	if !s.Mappable {
		meta += " &middot; tanpa koordinat"
	}

	var sb strings.Builder
	sb.WriteString(app.Title(s.Name, "/spot?id="+s.ID))
	sb.WriteString(app.Meta(meta))
	if s.Address != "" {
		sb.WriteString(app.Desc(s.Address))
	}
	return app.CardDiv(sb.String())
}

// renderDetail renders the spot detail page.
func renderDetail(s *catalog.Spot) string {
	var sb strings.Builder

	sb.WriteString(`<p><a href="/">&larr; Kembali ke peta</a></p>`)
	sb.WriteString(`<h2>` + html.EscapeString(s.Name) + `</h2>`)

	tags := []string{s.Category}
	if s.SubCategory != "" {
		tags = append(tags, s.SubCategory)
	}
	sb.WriteString(app.Tags(tags, ""))

	info := func(label, value string) {
		if value == "" {
			value = "-"
		}
		sb.WriteString(fmt.Sprintf(`<p><b>%s</b><br>%s</p>`, label, html.EscapeString(value)))
	}
	info("Alamat", s.Address)
	hours := s.Hours
	if hours == "" {
		hours = "Setiap Hari"
	}
	info("Operasional", hours)
	info("Kontak", s.Contact)

	if s.Description != "" {
		// descriptions from the sheet may carry markdown
		sb.WriteString(app.CardDiv(app.RenderString(s.Description)))
	}

	for k, v := range s.Extra {
		info(k, v)
	}

	if s.Mappable {
		sb.WriteString(`<div id="map"></div>`)
		sb.WriteString(renderMapScript([]*catalog.Spot{s}))
	}

	if link := s.MapsURL; link != "" {
		sb.WriteString(fmt.Sprintf(
			`<p><a class="btn" href="%s" target="_blank" rel="noopener noreferrer">Buka di Google Maps</a></p>`,
			html.EscapeString(link),
		))
		sb.WriteString(fmt.Sprintf(`<p><img src="/spot/qr?id=%s" alt="QR" width="160" height="160"></p>`, s.ID))
	}

	return sb.String()
}

// popupHTML builds the Leaflet popup for a spot.
func popupHTML(s *catalog.Spot) string {
	popup := "<b>" + html.EscapeString(s.Name) + "</b>"
	if s.SubCategory != "" {
		popup += "<br><em>" + html.EscapeString(s.SubCategory) + "</em>"
	}
	if s.Address != "" {
		popup += "<br>" + html.EscapeString(s.Address)
	}
	popup += `<br><a href="/spot?id=` + s.ID + `">Detail &rarr;</a>`
	return popup
}

// renderMapScript generates the Leaflet JavaScript: basemap with a theme
// toggle, the boundary polygon when available, and a marker per mappable
// spot.
func renderMapScript(visible []*catalog.Spot) string {
	var markersJS strings.Builder
	markers := 0
	for _, s := range visible {
		if !s.Mappable {
			continue
		}
		markersJS.WriteString(fmt.Sprintf(
			"markers.push(L.marker([%f,%f]).addTo(map).bindPopup(%s));\n  ",
			s.Lat, s.Lon, jsonStr(popupHTML(s)),
		))
		markers++
	}

	boundaryJS := ""
	if geo := boundary.GeoJSON(); geo != nil {
		boundaryJS = fmt.Sprintf(
			`L.geoJSON(%s, {style: {color:'#5D4037', weight:3, opacity:0.8, dashArray:'10, 10', fillColor:'#8D6E63', fillOpacity:0.2}}).addTo(map);`,
			string(geo),
		)
	}

	fitJS := ""
	if markers > 1 {
		fitJS = `map.fitBounds(L.latLngBounds(markers.map(function(m){return m.getLatLng();})), {padding:[40,40]});`
	} else if markers == 1 {
		fitJS = `map.setView(markers[0].getLatLng(), 16);`
	}

	return fmt.Sprintf(`<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css" integrity="sha256-p4NxAoJBhIIN+hmNHrzRCf9tD/miZyoHS5obTRR9BMY=" crossorigin="">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js" integrity="sha256-20nQCchB9co0qIjJZRGuk2/Z9VM+kNiyxNV/XN/WPeE=" crossorigin=""></script>
<script>
(function() {
  var map = L.map('map').setView([%f,%f],%d);
  var light = L.tileLayer('%s', {maxZoom: 19, attribution: '&copy; <a href="https://carto.com/attributions">CARTO</a>'});
  var dark = L.tileLayer('%s', {maxZoom: 19, attribution: '&copy; <a href="https://carto.com/attributions">CARTO</a>'});
  light.addTo(map);
  L.control.layers({'Terang': light, 'Malam': dark}).addTo(map);
  %s
  var markers = [];
  %s
  %s
})();
</script>`, centerLat, centerLon, zoomLevel, tilesLight, tilesDark, boundaryJS, markersJS.String(), fitJS)
}

// jsonStr returns a JSON-encoded string for use in JavaScript
func jsonStr(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
