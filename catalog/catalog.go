package catalog

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"desa/app"
	"desa/data"
)

// State is where the catalog sits in its lifecycle: empty until anything is
// known, loading while the first fetch is outstanding, loaded once a snapshot
// exists. A refresh failure never moves a loaded catalog backwards.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
)

// FeedURL is the published CSV location, set by main before Load.
var FeedURL string

const snapshotKey = "catalog"

var (
	mutex      sync.RWMutex
	spots      []*Spot
	state      = StateEmpty
	snapshotID string
	fetchedAt  time.Time

	// the default active category set, captured once at the first non-empty
	// catalog and deliberately never re-synced against later refreshes
	defaultCategories []string
)

// Load initialises the catalog from the last stored snapshot so the map has
// data immediately. The network fetch happens separately via Sync.
func Load() {
	payload, id, at, err := data.LoadSnapshot(snapshotKey)
	if err != nil {
		app.Log("catalog", "Snapshot read failed: %v", err)
		return
	}
	if payload == nil {
		app.Log("catalog", "No stored snapshot")
		return
	}

	var cached []*Spot
	if err := json.Unmarshal(payload, &cached); err != nil {
		// a corrupt snapshot degrades to empty, the fetch still runs
		app.Log("catalog", "Snapshot corrupt, starting empty: %v", err)
		return
	}
	if len(cached) == 0 {
		return
	}

	setSnapshot(cached, id, at, false)
	app.Log("catalog", "Loaded %d spots from snapshot %s", len(cached), id)
}

// Sync performs the one-shot feed fetch. A result is accepted only when it is
// non-empty; a failed or empty pull leaves the current catalog untouched.
func Sync() error {
	mutex.Lock()
	if state == StateEmpty {
		state = StateLoading
	}
	url := FeedURL
	mutex.Unlock()

	fetched, err := FetchFeed(url)
	if err != nil {
		app.Log("catalog", "Feed sync failed: %v", err)
		return err
	}
	if len(fetched) == 0 {
		app.Log("catalog", "Feed returned no rows, keeping current catalog")
		return nil
	}

	id := uuid.New().String()
	now := time.Now()
	setSnapshot(fetched, id, now, true)
	app.Log("catalog", "Feed sync: %d spots, snapshot %s", len(fetched), id)
	return nil
}

// setSnapshot replaces the catalog wholesale. Persistence failures are logged
// and otherwise ignored; the in-memory catalog is already good.
func setSnapshot(newSpots []*Spot, id string, at time.Time, persist bool) {
	mutex.Lock()
	spots = newSpots
	state = StateLoaded
	snapshotID = id
	fetchedAt = at
	if defaultCategories == nil {
		defaultCategories = Categories(newSpots)
	}
	mutex.Unlock()

	if !persist {
		return
	}
	payload, err := json.Marshal(newSpots)
	if err != nil {
		app.Log("catalog", "Snapshot marshal failed: %v", err)
		return
	}
	if err := data.StoreSnapshot(snapshotKey, id, at, payload); err != nil {
		app.Log("catalog", "Snapshot store failed: %v", err)
	}
}

// Spots returns the full catalog, coordinate-invalid rows included.
func Spots() []*Spot {
	mutex.RLock()
	defer mutex.RUnlock()
	out := make([]*Spot, len(spots))
	copy(out, spots)
	return out
}

// Mappable returns only the spots whose coordinates parsed, the set that gets
// markers. List views keep the rest.
func Mappable() []*Spot {
	mutex.RLock()
	defer mutex.RUnlock()
	var out []*Spot
	for _, s := range spots {
		if s.Mappable {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the spot with the given id, or nil.
func Get(id string) *Spot {
	mutex.RLock()
	defer mutex.RUnlock()
	for _, s := range spots {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// GetState returns the catalog lifecycle state.
func GetState() State {
	mutex.RLock()
	defer mutex.RUnlock()
	return state
}

// DefaultCategories returns the active-category default captured at the first
// non-empty catalog.
func DefaultCategories() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	out := make([]string, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// ResetForTest clears the in-memory catalog so tests can start empty.
func ResetForTest() {
	mutex.Lock()
	spots = nil
	state = StateEmpty
	snapshotID = ""
	fetchedAt = time.Time{}
	defaultCategories = nil
	mutex.Unlock()
}

// Status reports catalog state for the status page.
func Status() (string, int, int, string, time.Time) {
	mutex.RLock()
	defer mutex.RUnlock()
	mappable := 0
	for _, s := range spots {
		if s.Mappable {
			mappable++
		}
	}
	return string(state), len(spots), mappable, snapshotID, fetchedAt
}
