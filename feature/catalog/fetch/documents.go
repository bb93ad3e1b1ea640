package fetch

import (
	"strings"
	"time"

	"game-catalog/core/utils"
)

// Documents holds the raw provider documents for one ingestion call.
// Tags, Detail and Reviews are nil when their provider failed.
type Documents struct {
	Primary *PrimaryDocument
	Tags    TagCatalog
	Detail  *DetailDocument
	Reviews *ReviewSummary
}

// TagCatalog maps store tag ids to display names.
type TagCatalog map[int64]string

// Association is a developer or publisher credit.
type Association struct {
	Type string
	Name string
}

// PrimaryDocument is the identity document for an app.
type PrimaryDocument struct {
	AppID uint64
	Name  string
	// GenreIndex maps position keys ("0", "1") to provider genre ids.
	GenreIndex            map[string]string
	PrimaryGenreID        string
	StoreTagIDs           []int64
	ControllerSupport     string
	CompatibilityCategory string
	Depots                map[string]any
	ReleaseDate           *time.Time
	IconHash              string
	Associations          []Association
	// LibraryAssets lists which library images exist (capsule, hero, logo).
	LibraryAssets map[string]bool
}

// Credits returns the association names of the given type in document order.
func (p *PrimaryDocument) Credits(kind string) []string {
	out := []string{}
	for _, a := range p.Associations {
		if strings.EqualFold(a.Type, kind) && a.Name != "" {
			out = append(out, a.Name)
		}
	}
	return out
}

// DetailDocument is the store detail document for an app.
type DetailDocument struct {
	DescriptionHTML string
	GenreCSV        string
	Screenshots     []string
}

// ReviewSummary holds the aggregate positive and negative review counts.
type ReviewSummary struct {
	Positive int
	Negative int
}

// AssetURLs are the image URLs derived for one app. Empty strings mean absent.
type AssetURLs struct {
	AppID       uint64
	Backdrop    string
	Banner      string
	Icon        string
	Logo        string
	Poster      string
	Screenshots []string
}

type rawPrimary struct {
	Status string            `json:"status"`
	Data   map[string]rawApp `json:"data"`
}

type rawApp struct {
	Common rawCommon      `json:"common"`
	Depots map[string]any `json:"depots"`
}

type rawCommon struct {
	Name              string                    `json:"name"`
	Genres            map[string]any            `json:"genres"`
	PrimaryGenre      any                       `json:"primary_genre"`
	StoreTags         map[string]any            `json:"store_tags"`
	ControllerSupport string                    `json:"controller_support"`
	SteamDeck         map[string]any            `json:"steam_deck_compatibility"`
	ReleaseDate       any                       `json:"steam_release_date"`
	Icon              string                    `json:"icon"`
	Associations      map[string]rawAssociation `json:"associations"`
	LibraryAssets     map[string]any            `json:"library_assets"`
}

type rawAssociation struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type rawTagCatalog struct {
	Success any `json:"success"`
	Tags    []struct {
		TagID any    `json:"tagid"`
		Name  string `json:"name"`
	} `json:"tags"`
}

type rawReviews struct {
	Success      any `json:"success"`
	QuerySummary struct {
		TotalPositive any `json:"total_positive"`
		TotalNegative any `json:"total_negative"`
	} `json:"query_summary"`
}

type rawDetailEntry struct {
	Success bool      `json:"success"`
	Data    rawDetail `json:"data"`
}

type rawDetail struct {
	DetailedDescription string `json:"detailed_description"`
	Genre               string `json:"genre"`
	Genres              []struct {
		Description string `json:"description"`
	} `json:"genres"`
	Screenshots []struct {
		PathFull string `json:"path_full"`
	} `json:"screenshots"`
}

func (c rawCommon) toDocument(appID uint64, depots map[string]any) *PrimaryDocument {
	doc := &PrimaryDocument{
		AppID:             appID,
		Name:              strings.TrimSpace(c.Name),
		GenreIndex:        make(map[string]string, len(c.Genres)),
		PrimaryGenreID:    utils.ToString(c.PrimaryGenre),
		ControllerSupport: c.ControllerSupport,
		Depots:            depots,
		IconHash:          c.Icon,
		LibraryAssets:     make(map[string]bool, len(c.LibraryAssets)),
	}
	for k, v := range c.Genres {
		doc.GenreIndex[k] = utils.ToString(v)
	}
	for _, k := range utils.SortedKeys(c.StoreTags) {
		if id := utils.ToInt64(c.StoreTags[k]); id != 0 {
			doc.StoreTagIDs = append(doc.StoreTagIDs, id)
		}
	}
	if c.SteamDeck != nil {
		doc.CompatibilityCategory = utils.ToString(c.SteamDeck["category"])
	}
	if ts := utils.ToInt64(c.ReleaseDate); ts > 0 {
		t := time.Unix(ts, 0).UTC()
		doc.ReleaseDate = &t
	}
	for _, k := range utils.SortedKeys(c.Associations) {
		a := c.Associations[k]
		doc.Associations = append(doc.Associations, Association{Type: a.Type, Name: a.Name})
	}
	for k, v := range c.LibraryAssets {
		if v != nil && utils.ToString(v) != "" {
			doc.LibraryAssets[k] = true
		}
	}
	return doc
}

func (d rawDetail) toDocument() *DetailDocument {
	doc := &DetailDocument{
		DescriptionHTML: d.DetailedDescription,
		GenreCSV:        d.Genre,
	}
	if doc.GenreCSV == "" && len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Description)
		}
		doc.GenreCSV = strings.Join(names, ", ")
	}
	for _, s := range d.Screenshots {
		if s.PathFull != "" {
			doc.Screenshots = append(doc.Screenshots, s.PathFull)
		}
	}
	return doc
}

func (r rawReviews) toSummary() *ReviewSummary {
	return &ReviewSummary{
		Positive: utils.ToInt(r.QuerySummary.TotalPositive),
		Negative: utils.ToInt(r.QuerySummary.TotalNegative),
	}
}
