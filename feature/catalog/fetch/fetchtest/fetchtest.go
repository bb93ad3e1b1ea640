// Package fetchtest runs a fake catalog provider for tests.
package fetchtest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"game-catalog/feature/catalog/fetch"
)

// Route names accepted by SetStatus.
const (
	RoutePrimary = "primary"
	RouteTags    = "tags"
	RouteDetail  = "detail"
	RouteReviews = "reviews"
)

// Provider is an httptest server speaking the provider document formats.
type Provider struct {
	Server *httptest.Server
	AppID  uint64

	mu          sync.Mutex
	status      map[string]int
	bodies      map[string]string
	delays      map[string]time.Duration
	hits        map[string]int
	userAgents  []string
	images      map[string][]byte
	screenshots []string
}

// New starts a provider serving a complete game with id appID.
// The backdrop is a horizontal gradient and three screenshots rank
// ss_1 (identical), ss_2 (mirrored), ss_0 (mirrored and flipped).
func New(t testing.TB, appID uint64) *Provider {
	t.Helper()
	p := &Provider{
		AppID:  appID,
		status: make(map[string]int),
		bodies: make(map[string]string),
		delays: make(map[string]time.Duration),
		hits:   make(map[string]int),
		images: map[string][]byte{
			"header.jpg":          Gradient(64, 64, 0, 1),
			"library_hero.jpg":    Gradient(90, 90, 1, 0),
			"logo.png":            Gradient(40, 20, 1, -1),
			"library_600x900.jpg": Gradient(60, 90, 0, -1),
			"icon.jpg":            Gradient(32, 32, -1, 0),
			"ss_0.png":            Gradient(90, 90, -1, 1),
			"ss_1.png":            Gradient(90, 90, 1, 0),
			"ss_2.png":            Gradient(90, 90, -1, 0),
		},
		screenshots: []string{"ss_0.png", "ss_1.png", "ss_2.png"},
	}
	p.Server = httptest.NewServer(http.HandlerFunc(p.serve))
	t.Cleanup(p.Server.Close)
	return p
}

// Config returns a fetch.Config pointing at the fake provider.
func (p *Provider) Config() fetch.Config {
	base := p.Server.URL
	return fetch.Config{
		PrimaryURL:        base + "/primary/%d",
		TagsURL:           base + "/tags",
		DetailURL:         base + "/detail?appids=%d",
		ReviewsURL:        base + "/reviews/%d?json=1",
		CDNURL:            base + "/cdn/%d/%s",
		IconURL:           base + "/icons/%d/%s.jpg",
		UserAgent:         "Valve/Steam HTTP Client 1.0",
		TimeoutSeconds:    5,
		RequestsPerSecond: 1000,
		Burst:             1000,
		MaxImageBytes:     1 << 20,
	}
}

// SetStatus forces route (primary, tags, detail, or an image name) to answer with status.
func (p *Provider) SetStatus(route string, status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status[route] = status
}

// SetBody replaces the JSON served for a document route.
func (p *Provider) SetBody(route, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies[route] = body
}

// SetDelay holds responses on route for d before answering.
func (p *Provider) SetDelay(route string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delays[route] = d
}

// SetImage replaces the bytes served for an image name.
func (p *Provider) SetImage(name string, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.images[name] = data
}

// SetScreenshots replaces the screenshot names listed in the detail document.
func (p *Provider) SetScreenshots(names ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.screenshots = names
}

// ImageURL is the URL a screenshot name is served at.
func (p *Provider) ImageURL(name string) string {
	return p.Server.URL + "/shots/" + name
}

// CDNURL is the URL a library asset name is served at.
func (p *Provider) CDNURL(name string) string {
	return fmt.Sprintf("%s/cdn/%d/%s", p.Server.URL, p.AppID, name)
}

// Hits returns how often a route was requested.
func (p *Provider) Hits(route string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits[route]
}

// UserAgents returns the User-Agent of every request seen.
func (p *Provider) UserAgents() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.userAgents...)
}

func (p *Provider) serve(w http.ResponseWriter, r *http.Request) {
	route, name := p.route(r)

	p.mu.Lock()
	p.hits[route]++
	p.userAgents = append(p.userAgents, r.Header.Get("User-Agent"))
	status := p.status[route]
	if status == 0 && name != "" {
		status = p.status[name]
	}
	img := p.images[name]
	body, custom := p.bodies[route]
	delay := p.delays[route]
	shots := append([]string(nil), p.screenshots...)
	p.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status != 0 {
		w.WriteHeader(status)
		return
	}

	if custom {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
		return
	}

	switch route {
	case RoutePrimary:
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, p.primaryJSON())
	case RouteTags:
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, tagsJSON)
	case RouteDetail:
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, p.detailJSON(shots))
	case RouteReviews:
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, reviewsJSON)
	case "image":
		if img == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(img)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (p *Provider) route(r *http.Request) (string, string) {
	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, "/primary/"):
		if strings.TrimPrefix(path, "/primary/") != strconv.FormatUint(p.AppID, 10) {
			return "unknown", ""
		}
		return RoutePrimary, ""
	case path == "/tags":
		return RouteTags, ""
	case path == "/detail":
		return RouteDetail, ""
	case strings.HasPrefix(path, "/reviews/"):
		if strings.TrimPrefix(path, "/reviews/") != strconv.FormatUint(p.AppID, 10) {
			return "unknown", ""
		}
		return RouteReviews, ""
	case strings.HasPrefix(path, "/icons/"):
		return "image", "icon.jpg"
	case strings.HasPrefix(path, "/cdn/"), strings.HasPrefix(path, "/shots/"):
		return "image", path[strings.LastIndex(path, "/")+1:]
	default:
		return "unknown", ""
	}
}

func (p *Provider) primaryJSON() string {
	return fmt.Sprintf(primaryTemplate, p.AppID)
}

func (p *Provider) detailJSON(shots []string) string {
	parts := make([]string, 0, len(shots))
	for _, s := range shots {
		parts = append(parts, fmt.Sprintf(`{"id":%d,"path_full":%q}`, len(parts), p.ImageURL(s)))
	}
	return fmt.Sprintf(detailTemplate, p.AppID, strings.Join(parts, ","))
}

// Gradient encodes a w x h grayscale PNG whose brightness moves along x by dx
// and along y by dy (each -1, 0 or 1).
func Gradient(w, h, dx, dy int) []byte {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 128 + dx*(x*60/w) + dy*(y*60/h)
			img.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

const primaryTemplate = `{
  "status": "success",
  "data": {
    "%[1]d": {
      "appid": "%[1]d",
      "common": {
        "name": "Space Survival: Deluxe Edition",
        "type": "Game",
        "icon": "icon",
        "genres": {"0": "1", "1": "37", "2": "25"},
        "primary_genre": "37",
        "store_tags": {"0": "1662", "1": "19", "2": "99999", "10": "3859"},
        "controller_support": "full",
        "steam_deck_compatibility": {"category": "3"},
        "steam_release_date": "1700000000",
        "associations": {
          "0": {"type": "developer", "name": "Orbit Works"},
          "1": {"type": "publisher", "name": "Big Pub"},
          "2": {"type": "developer", "name": "Port Co"}
        },
        "library_assets": {"library_capsule": "en", "library_hero": "en", "library_logo": "en"}
      },
      "depots": {
        "branches": {"public": {"buildid": "1", "size": "999999"}},
        "privatebranches": {"size": "1"},
        "101": {"manifests": {"public": {"gid": "5", "size": "3000", "download": "1000"}}},
        "102": {"manifests": {"public": {"gid": "6", "size": "2000", "download": "500"}}}
      }
    }
  }
}`

const tagsJSON = `{"success": 1, "tags": [
  {"tagid": 1662, "name": "Survival"},
  {"tagid": 19, "name": "Action"},
  {"tagid": 3859, "name": "Multiplayer"}
]}`

const detailTemplate = `{
  "%d": {
    "success": true,
    "data": {
      "detailed_description": "Build &amp; explore<br />the &quot;void&quot;&nbsp;",
      "genre": "Action, Free to Play, Indie",
      "recommendations": {"total": 100},
      "screenshots": [%s]
    }
  }
}`

const reviewsJSON = `{
  "success": 1,
  "query_summary": {
    "num_reviews": 0,
    "review_score": 6,
    "review_score_desc": "Mostly Positive",
    "total_positive": 80,
    "total_negative": 20,
    "total_reviews": 100
  },
  "reviews": []
}`
