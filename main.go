package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"desa/app"
	"desa/boundary"
	"desa/catalog"
	"desa/news"
	"desa/presence"
	"desa/spots"
)

var EnvFlag = flag.String("env", "dev", "Set the environment")
var ServeFlag = flag.Bool("serve", false, "Run the server")
var AddressFlag = flag.String("address", ":8080", "Address for server")

// Published sheet and boundary defaults; override with DESA_FEED_URL and
// DESA_BOUNDARY_URL.
const (
	defaultFeedURL     = "https://docs.google.com/spreadsheets/d/e/2PACX-1vQ_bz9RYwLbguOr7ldMnd4vX3YQZT_EDKCskpvzFK6RJ85SVJZEy_X8xxarE7JwEzWNjvlrjCnMaX75/pub?gid=1978774550&single=true&output=csv"
	defaultBoundaryURL = "https://desagedangan.id/batas-gedangan.geojson"
)

var aboutText = `# Desa Gedangan

Peta digital Desa Gedangan: UMKM, tempat wisata dan fasilitas umum dalam satu
peta. Data lokasi dikelola perangkat desa lewat spreadsheet dan dimuat sekali
setiap kali aplikasi dibuka.

- Peta interaktif dengan batas wilayah desa
- Filter kategori utama dan sub-kategori
- Pencarian nama lokasi
- Kabar dan pengumuman desa
`

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	flag.Parse()

	if !*ServeFlag {
		fmt.Println("--serve not set")
		return
	}

	catalog.FeedURL = getEnvOrDefault("DESA_FEED_URL", defaultFeedURL)
	boundary.URL = getEnvOrDefault("DESA_BOUNDARY_URL", defaultBoundaryURL)

	// render the about page
	aboutHTML := app.RenderTemplate("Tentang", "Tentang peta Desa Gedangan", aboutText)

	// cache-first: stored snapshot and boundary come up before any network
	catalog.Load()
	boundary.Load()

	// presentation wiring
	spots.Load()
	app.BoundaryStatusFunc = boundary.Status

	// announcements
	news.Load()

	// visitor counter
	presence.Load()

	// the one-shot startup fetches, feed and boundary side by side
	go func() {
		g := new(errgroup.Group)
		g.Go(catalog.Sync)
		g.Go(boundary.Sync)
		if err := g.Wait(); err != nil {
			app.Log("main", "Startup fetch: %v", err)
		}
	}()

	// serve the spot list
	http.HandleFunc("/spots", spots.ListHandler)

	// serve spot details
	http.HandleFunc("/spot", spots.DetailHandler)
	http.HandleFunc("/spot/qr", spots.QRHandler)

	// manual reload affordance
	http.HandleFunc("/sync", spots.SyncHandler)

	// serve the announcements
	http.HandleFunc("/news", news.Handler)

	// visitor presence socket
	http.HandleFunc("/presence", presence.Handler)

	// status and health
	http.HandleFunc("/status", app.StatusHandler)

	// serve the about page
	http.Handle("/about", app.ServeHTML(aboutHTML))

	// serve static assets
	http.Handle("/", app.Serve())

	fmt.Println("Starting server on", *AddressFlag)

	if err := http.ListenAndServe(*AddressFlag, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if *EnvFlag == "dev" {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
		}

		if v := len(r.URL.Path); v > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = r.URL.Path[:v-1]
		}

		// the map is the front page; everything else falls through to the mux
		if r.URL.Path == "/" {
			spots.MapHandler(w, r)
			return
		}

		http.DefaultServeMux.ServeHTTP(w, r)
	})); err != nil {
		fmt.Printf("Server error: %v\n", err)
		return
	}
}
