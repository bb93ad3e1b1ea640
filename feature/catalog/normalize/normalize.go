package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"game-catalog/core/utils"
	"game-catalog/feature/catalog/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\w\s-]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
	lineBreaks   = regexp.MustCompile(`(?i)<br\s*/?>`)

	entities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)

	titleCaser = cases.Title(language.English)
)

// Reserved depot keys that are not depots.
const (
	depotBranches        = "branches"
	depotPrivateBranches = "privatebranches"
)

// Slugify turns a display name into a URL-safe slug. Applying it twice is a no-op.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ParseGenres splits a comma separated genre list. Empty input yields an empty list.
func ParseGenres(csv string) []models.Tag {
	out := []models.Tag{}
	for _, part := range strings.Split(csv, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, models.Tag{Name: name, Slug: Slugify(name), Type: models.TagTypeGenre})
	}
	return out
}

// MapTags resolves store tag ids against the tag catalog.
// Ids missing from the catalog are dropped.
func MapTags(catalog map[int64]string, ids []int64) []models.Tag {
	out := []models.Tag{}
	for _, id := range ids {
		name, ok := catalog[id]
		if !ok || name == "" {
			continue
		}
		out = append(out, models.Tag{Name: name, Slug: Slugify(name), Type: models.TagTypeTag})
	}
	return out
}

// ClassifyController returns the generated controller tag name.
// An empty raw value means the provider did not report support.
func ClassifyController(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "Unknown Controller Support"
	}
	return titleCaser.String(raw) + " Controller Support"
}

// ControllerTag wraps ClassifyController as a store tag.
func ControllerTag(raw string) models.Tag {
	name := ClassifyController(raw)
	return models.Tag{Name: name, Slug: Slugify(name), Type: models.TagTypeTag}
}

// ClassifyCompatibility maps the provider category code to a tier.
func ClassifyCompatibility(code string) models.Compatibility {
	switch strings.TrimSpace(code) {
	case "1":
		return models.CompatibilityLow
	case "2":
		return models.CompatibilityMid
	case "3":
		return models.CompatibilityHigh
	default:
		return models.CompatibilityUnknown
	}
}

// ResolvePrimaryGenre finds the index whose genre id equals primaryGenreID and
// returns the genre name at that index, or nil when there is no match.
func ResolvePrimaryGenre(genres []models.Tag, genreIndex map[string]string, primaryGenreID string) *string {
	if len(genres) == 0 || len(genreIndex) == 0 || primaryGenreID == "" {
		return nil
	}
	for _, key := range utils.SortedKeys(genreIndex) {
		if genreIndex[key] != primaryGenreID {
			continue
		}
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx >= len(genres) {
			return nil
		}
		name := genres[idx].Name
		return &name
	}
	return nil
}

// CleanDescription strips line breaks and decodes a fixed set of entities.
// Unknown entities are left untouched.
func CleanDescription(html string) string {
	s := lineBreaks.ReplaceAllString(html, " ")
	s = entities.Replace(s)
	return strings.TrimSpace(s)
}

// ComputePublicDepotSize sums download and installed sizes over all depots.
// Depots report sizes either at the top level or under manifests.public.
func ComputePublicDepotSize(depots map[string]any) models.Size {
	var size models.Size
	for key, raw := range depots {
		if key == depotBranches || key == depotPrivateBranches {
			continue
		}
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if manifests, ok := entry["manifests"].(map[string]any); ok {
			if public, ok := manifests["public"].(map[string]any); ok {
				entry = public
			}
		}
		size.DownloadSizeBytes += utils.ToInt64(entry["download"])
		size.InstalledSizeBytes += utils.ToInt64(entry["size"])
	}
	return size
}
