package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"
)

var startTime = time.Now()

// CatalogStatusFunc is injected at startup to avoid an import cycle
var CatalogStatusFunc func() (state string, spots, mappable int, snapshotID string, fetchedAt time.Time)

// BoundaryStatusFunc is injected at startup to avoid an import cycle
var BoundaryStatusFunc func() (loaded bool, features int)

// StatusCheck represents a single status check result
type StatusCheck struct {
	Name    string `json:"name"`
	Status  bool   `json:"status"`
	Details string `json:"details,omitempty"`
}

// StatusResponse represents the full status response
type StatusResponse struct {
	Healthy   bool          `json:"healthy"`
	Uptime    string        `json:"uptime"`
	GoVersion string        `json:"go_version"`
	Memory    MemoryStatus  `json:"memory"`
	Services  []StatusCheck `json:"services"`
}

// MemoryStatus represents memory usage
type MemoryStatus struct {
	Alloc      uint64 `json:"alloc_mb"`
	Sys        uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
	Goroutines int    `json:"goroutines"`
}

// StatusHandler handles the /status endpoint
func StatusHandler(w http.ResponseWriter, r *http.Request) {
	// Quick health check endpoint
	if r.URL.Query().Get("quick") == "1" {
		w.Header().Set("Content-Type", "application/json")
		status := buildStatus()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"healthy": status.Healthy,
		})
		return
	}

	status := buildStatus()

	if r.URL.Query().Get("format") == "json" || WantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
		return
	}

	html := renderStatusHTML(status)
	w.Write([]byte(RenderHTML("Status", "Server status and health checks", html)))
}

func buildStatus() StatusResponse {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	services := []StatusCheck{}

	if CatalogStatusFunc != nil {
		state, spots, mappable, snapshotID, fetchedAt := CatalogStatusFunc()
		details := fmt.Sprintf("%d spots (%d mappable)", spots, mappable)
		if snapshotID != "" {
			details += fmt.Sprintf(", snapshot %s from %s", snapshotID, fetchedAt.Format(time.RFC3339))
		}
		services = append(services, StatusCheck{
			Name:    "Catalog",
			Status:  state == "loaded",
			Details: state + ": " + details,
		})
	}

	if BoundaryStatusFunc != nil {
		loaded, features := BoundaryStatusFunc()
		details := "overlay omitted"
		if loaded {
			details = fmt.Sprintf("%d features", features)
		}
		services = append(services, StatusCheck{
			Name:    "Boundary",
			Status:  loaded,
			Details: details,
		})
	}

	healthy := true
	for _, s := range services {
		// the boundary overlay is optional, only the catalog gates health
		if s.Name == "Catalog" && !s.Status {
			healthy = false
		}
	}

	return StatusResponse{
		Healthy:   healthy,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		GoVersion: runtime.Version(),
		Memory: MemoryStatus{
			Alloc:      m.Alloc / 1024 / 1024,
			Sys:        m.Sys / 1024 / 1024,
			NumGC:      m.NumGC,
			Goroutines: runtime.NumGoroutine(),
		},
		Services: services,
	}
}

func renderStatusHTML(status StatusResponse) string {
	var html string

	badge := func(ok bool) string {
		if ok {
			return `<span class="status-ok">OK</span>`
		}
		return `<span class="status-fail">DOWN</span>`
	}

	html += `<h2>Status</h2>`
	html += fmt.Sprintf(`<p>Healthy: %v | Uptime: %s | %s</p>`, status.Healthy, status.Uptime, status.GoVersion)

	html += `<h3>Services</h3><table class="status-table">`
	for _, s := range status.Services {
		html += fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%s</td></tr>`, s.Name, badge(s.Status), s.Details)
	}
	html += `</table>`

	html += fmt.Sprintf(`<h3>Memory</h3><p>Alloc: %dMB | Sys: %dMB | GC: %d | Goroutines: %d</p>`,
		status.Memory.Alloc, status.Memory.Sys, status.Memory.NumGC, status.Memory.Goroutines)

	html += `<h3>Fetches</h3><table class="status-table">`
	for i, e := range GetFetchLog() {
		if i >= 20 {
			break
		}
		errMsg := ""
		if e.Error != "" {
			errMsg = " - " + e.Error
		}
		html += fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%d</td><td>%s%s</td></tr>`,
			e.Time.Format("15:04:05"), e.Service, e.Status, e.Duration.Round(time.Millisecond), errMsg)
	}
	html += `</table>`

	html += `<h3>Log</h3><pre class="syslog">`
	for i, e := range GetSysLog() {
		if i >= 50 {
			break
		}
		html += fmt.Sprintf("%s [%s] %s\n", e.Time.Format("15:04:05"), e.Package, e.Message)
	}
	html += `</pre>`

	return html
}
