// Package boundary fetches and caches the village boundary overlay. The
// overlay is decoration: any failure here is logged and the map simply
// renders without it.
package boundary

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"desa/app"
	"desa/data"
)

// FeatureCollection is the top level of a GeoJSON document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single geographic feature with geometry and properties.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   Geometry               `json:"geometry"`
}

// Geometry keeps coordinates raw; the server never interprets them, they go
// straight to Leaflet.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// URL is the boundary file location, set by main before Load.
var URL string

const cacheKey = "boundary.geojson"

var httpClient = &http.Client{Timeout: 15 * time.Second}

var (
	mutex sync.RWMutex
	raw   []byte
	count int
)

// Load initialises the overlay from the cached copy on disk, if any.
func Load() {
	b, err := data.Load(cacheKey)
	if err != nil {
		return
	}
	if err := set(b); err != nil {
		app.Log("boundary", "Cached boundary corrupt: %v", err)
	}
}

// Sync fetches the boundary file once. On failure the overlay stays as it
// was, which may be absent.
func Sync() error {
	start := time.Now()

	rsp, err := httpClient.Get(URL)
	if err != nil {
		app.RecordFetch("boundary", URL, 0, time.Since(start), err)
		app.Log("boundary", "Fetch failed, overlay omitted: %v", err)
		return err
	}
	defer rsp.Body.Close()

	if rsp.StatusCode != http.StatusOK {
		err := fmt.Errorf("boundary returned status %d", rsp.StatusCode)
		app.RecordFetch("boundary", URL, rsp.StatusCode, time.Since(start), err)
		app.Log("boundary", "Fetch failed, overlay omitted: %v", err)
		return err
	}

	b, err := io.ReadAll(rsp.Body)
	if err != nil {
		app.RecordFetch("boundary", URL, rsp.StatusCode, time.Since(start), err)
		return err
	}
	app.RecordFetch("boundary", URL, rsp.StatusCode, time.Since(start), nil)

	if err := set(b); err != nil {
		app.Log("boundary", "Parse failed, overlay omitted: %v", err)
		return err
	}

	if err := data.Save(cacheKey, string(b)); err != nil {
		app.Log("boundary", "Cache write failed: %v", err)
	}

	return nil
}

func set(b []byte) error {
	var fc FeatureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		return err
	}

	mutex.Lock()
	raw = b
	count = len(fc.Features)
	mutex.Unlock()
	return nil
}

// GeoJSON returns the raw boundary document, or nil when the overlay should
// be omitted.
func GeoJSON() []byte {
	mutex.RLock()
	defer mutex.RUnlock()
	return raw
}

// Status reports overlay state for the status page.
func Status() (bool, int) {
	mutex.RLock()
	defer mutex.RUnlock()
	return raw != nil, count
}
