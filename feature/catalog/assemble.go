package catalog

import (
	"errors"
	"strings"

	"game-catalog/feature/catalog/fetch"
	"game-catalog/feature/catalog/models"
	"game-catalog/feature/catalog/normalize"
)

// ErrIncompleteDocuments is returned when the primary document is missing.
var ErrIncompleteDocuments = errors.New("primary document missing")

// Assemble builds the canonical record from raw provider documents.
// Missing tag catalog, detail or review documents leave their fields empty.
func Assemble(docs *fetch.Documents) (*models.Game, error) {
	if docs == nil || docs.Primary == nil {
		return nil, ErrIncompleteDocuments
	}
	p := docs.Primary

	genres := []models.Tag{}
	description := ""
	if d := docs.Detail; d != nil {
		genres = normalize.ParseGenres(d.GenreCSV)
		description = normalize.CleanDescription(d.DescriptionHTML)
	}
	score := 0.0
	if r := docs.Reviews; r != nil {
		score = normalize.Score(r.Positive, r.Negative)
	}

	tags := normalize.MapTags(docs.Tags, p.StoreTagIDs)
	tags = append(tags, normalize.ControllerTag(p.ControllerSupport))

	game := &models.Game{
		ID:                p.AppID,
		Name:              strings.TrimSpace(p.Name),
		Slug:              normalize.Slugify(p.Name),
		Size:              normalize.ComputePublicDepotSize(p.Depots),
		ReleaseDate:       p.ReleaseDate,
		Description:       description,
		Score:             score,
		PrimaryGenre:      normalize.ResolvePrimaryGenre(genres, p.GenreIndex, p.PrimaryGenreID),
		ControllerSupport: models.ParseControllerSupport(p.ControllerSupport),
		Compatibility:     normalize.ClassifyCompatibility(p.CompatibilityCategory),
	}
	game.SetTags(tags)
	game.SetGenres(genres)
	game.SetDevelopers(p.Credits("developer"))
	game.SetPublishers(p.Credits("publisher"))
	return game, nil
}
