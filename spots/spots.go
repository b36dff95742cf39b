// Package spots renders the village map and the spot list/detail pages on
// top of the catalog.
package spots

import (
	"net/http"
	"strings"

	"desa/app"
	"desa/catalog"
)

// Load wires the catalog into the status page.
func Load() {
	app.CatalogStatusFunc = catalog.Status
}

// parseFilter builds the filter from query parameters. With no category
// parameters at all, every default category is active — the same starting
// state the sidebar checkboxes show.
func parseFilter(r *http.Request) catalog.Filter {
	q := r.URL.Query()

	f := catalog.Filter{
		Query:         strings.TrimSpace(q.Get("q")),
		SubCategories: q["sub"],
	}

	if cats, ok := q["category"]; ok {
		f.Categories = cats
	} else {
		f.Categories = catalog.DefaultCategories()
	}

	return f
}

// MapHandler handles the map page at /
func MapHandler(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	all := catalog.Spots()
	visible := catalog.Apply(all, f)

	if app.WantsJSON(r) {
		respondSpots(w, visible, false)
		return
	}

	app.Respond(w, r, app.Response{
		Title:       "Peta",
		Description: "Peta interaktif UMKM, wisata dan fasilitas umum Desa Gedangan",
		HTML:        renderMapPage(all, visible, f),
	})
}

// ListHandler handles /spots: the full list view, coordinate-invalid rows
// included.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	f := parseFilter(r)
	all := catalog.Spots()
	visible := catalog.Apply(all, f)

	if app.WantsJSON(r) {
		respondSpots(w, visible, r.URL.Query().Get("mappable") == "1")
		return
	}

	app.Respond(w, r, app.Response{
		Title:       "Lokasi",
		Description: "Daftar lokasi Desa Gedangan",
		HTML:        renderListPage(all, visible, f),
	})
}

// DetailHandler handles /spot?id=
func DetailHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		app.BadRequest(w, r, "id required")
		return
	}

	spot := catalog.Get(id)
	if spot == nil {
		app.NotFound(w, r, "spot not found")
		return
	}

	if app.WantsJSON(r) {
		app.RespondJSON(w, spot)
		return
	}

	app.Respond(w, r, app.Response{
		Title:       spot.Name,
		Description: spot.Name + " - " + spot.Category,
		HTML:        renderDetail(spot),
	})
}

// SyncHandler handles POST /sync: the manual reload affordance. It re-runs
// the one-shot feed fetch and reports the outcome.
func SyncHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		app.MethodNotAllowed(w, r)
		return
	}

	err := catalog.Sync()
	if app.WantsJSON(r) {
		state, count, mappable, snapshot, _ := catalog.Status()
		result := map[string]interface{}{
			"state":    state,
			"spots":    count,
			"mappable": mappable,
			"snapshot": snapshot,
		}
		if err != nil {
			result["error"] = err.Error()
		}
		app.RespondJSON(w, result)
		return
	}

	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

func respondSpots(w http.ResponseWriter, visible []*catalog.Spot, mappableOnly bool) {
	out := visible
	if mappableOnly {
		out = nil
		for _, s := range visible {
			if s.Mappable {
				out = append(out, s)
			}
		}
	}
	_, _, _, snapshot, fetchedAt := catalog.Status()
	app.RespondJSON(w, map[string]interface{}{
		"spots":      out,
		"count":      len(out),
		"snapshot":   snapshot,
		"fetched_at": fetchedAt,
	})
}
