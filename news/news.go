// Package news pulls village announcement feeds (RSS/Atom) and serves a
// cached rendering. Announcements sit beside the map; a broken feed never
// touches the catalog.
package news

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/mrz1836/go-sanitize"

	"desa/app"
	"desa/data"
)

//go:embed feeds.json
var f embed.FS

var mutex sync.RWMutex

var feeds = map[string]string{}

var status = map[string]*Feed{}

// cached rendered announcements
var html string

// the cached posts
var posts []*Post

// refreshEvery is how often the announcement feeds are re-pulled. The point
// catalog is fetch-once; announcements are the one thing that rolls over
// during the day.
const refreshEvery = time.Hour

// Feed tracks the pull state of a single source.
type Feed struct {
	Name     string
	URL      string
	Error    error
	Attempts int
	Backoff  time.Time
}

// Post is a single announcement.
type Post struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// Load reads the feed list and starts the refresh loop.
func Load() {
	loadFeeds()

	// serve the last rendering while the first pull runs
	if b, err := data.Load("news.html"); err == nil {
		mutex.Lock()
		html = string(b)
		mutex.Unlock()
	}

	go refresh()
}

func loadFeeds() {
	b, _ := f.ReadFile("feeds.json")
	mutex.Lock()
	if err := json.Unmarshal(b, &feeds); err != nil {
		app.Log("news", "Error parsing feeds.json: %v", err)
	}
	mutex.Unlock()
}

func backoff(attempts int) time.Duration {
	if attempts > 13 {
		return time.Hour
	}
	return time.Duration(math.Pow(float64(attempts), math.E)) * time.Millisecond * 100
}

func refresh() {
	for {
		parseFeeds()
		time.Sleep(refreshEvery)
	}
}

func parseFeeds() {
	p := gofeed.NewParser()

	mutex.RLock()
	sources := make(map[string]string, len(feeds))
	for name, u := range feeds {
		sources[name] = u
	}
	mutex.RUnlock()

	var sorted []string
	for name := range sources {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var all []*Post

	for _, name := range sorted {
		feedURL := sources[name]

		mutex.RLock()
		stat, ok := status[name]
		mutex.RUnlock()
		if !ok {
			stat = &Feed{Name: name, URL: feedURL}
			mutex.Lock()
			status[name] = stat
			mutex.Unlock()
		}

		// skip while the backoff clock still runs
		if stat.Attempts > 0 && time.Until(stat.Backoff) > 0 {
			continue
		}

		start := time.Now()
		parsed, err := p.ParseURL(feedURL)
		if err != nil {
			mutex.Lock()
			stat.Attempts++
			stat.Error = err
			stat.Backoff = time.Now().Add(backoff(stat.Attempts))
			mutex.Unlock()

			app.RecordFetch("news", feedURL, 0, time.Since(start), err)
			app.Log("news", "Error parsing %s: %v, attempt %d", feedURL, err, stat.Attempts)
			continue
		}
		app.RecordFetch("news", feedURL, http.StatusOK, time.Since(start), nil)

		mutex.Lock()
		stat.Attempts = 0
		stat.Backoff = time.Time{}
		stat.Error = nil
		mutex.Unlock()

		for i, item := range parsed.Items {
			// only 10 items per source
			if i >= 10 {
				break
			}

			post := &Post{
				Title:       sanitize.SingleLine(sanitize.XSS(item.Title)),
				Description: cleanDescription(item.Description),
				URL:         item.Link,
				Category:    name,
			}
			if item.PublishedParsed != nil {
				post.PostedAt = *item.PublishedParsed
			}

			// first item per source gets its preview image looked up
			if i == 0 {
				if img, err := previewImage(item.Link); err == nil {
					post.Image = img
				}
			}

			all = append(all, post)
		}
	}

	if len(all) == 0 {
		return
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PostedAt.After(all[j].PostedAt)
	})

	rendered := renderPosts(all)

	mutex.Lock()
	posts = all
	html = rendered
	mutex.Unlock()

	data.Save("news.html", rendered)
	app.Log("news", "Refreshed %d announcements from %d feeds", len(all), len(sorted))
}

// cleanDescription strips markup down to the first paragraph of plain text.
func cleanDescription(v string) string {
	if parts := strings.Split(v, "</p>"); len(parts) > 0 {
		v = strings.Replace(parts[0], "<p>", "", 1)
	}
	v = sanitize.HTML(v)
	v = sanitize.XSS(v)
	return strings.TrimSpace(v)
}

// previewImage scrapes the og:image meta tag from a linked page.
func previewImage(link string) (string, error) {
	u, err := url.Parse(link)
	if err != nil {
		return "", err
	}

	d, err := goquery.NewDocument(u.String())
	if err != nil {
		return "", err
	}

	var image string
	d.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		prop, _ := sel.Attr("property")
		if prop == "" {
			prop, _ = sel.Attr("name")
		}
		if prop == "og:image" || prop == "twitter:image" {
			image, _ = sel.Attr("content")
			return false
		}
		return true
	})

	if image == "" {
		return "", fmt.Errorf("no preview image for %s", link)
	}
	return image, nil
}

func renderPosts(all []*Post) string {
	var sb strings.Builder

	for _, post := range all {
		sb.WriteString(`<div class="news">`)
		sb.WriteString(`<a href="` + post.URL + `" rel="noopener noreferrer" target="_blank">`)
		if post.Image != "" {
			sb.WriteString(`<img class="cover" src="` + post.Image + `">`)
		}
		sb.WriteString(`<span class="text">` + post.Title + `</span>`)
		sb.WriteString(`<span class="description">` + post.Description + `</span>`)
		sb.WriteString(`</a>`)
		sb.WriteString(app.Meta(post.Category + " &middot; " + post.PostedAt.Format("2 Jan 2006")))
		sb.WriteString(`</div>`)
	}

	return sb.String()
}

// Handler handles /news requests
func Handler(w http.ResponseWriter, r *http.Request) {
	if app.WantsJSON(r) {
		mutex.RLock()
		out := make([]*Post, len(posts))
		copy(out, posts)
		mutex.RUnlock()
		app.RespondJSON(w, map[string]interface{}{"posts": out, "count": len(out)})
		return
	}

	mutex.RLock()
	body := html
	mutex.RUnlock()

	if body == "" {
		body = app.Empty("Belum ada kabar desa.")
	}

	app.Respond(w, r, app.Response{
		Title:       "Kabar",
		Description: "Kabar dan pengumuman Desa Gedangan",
		HTML:        body,
	})
}
