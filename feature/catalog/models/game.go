package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Tag is a genre or store tag attached to a game.
type Tag struct {
	Name string  `json:"name"`
	Slug string  `json:"slug"`
	Type TagType `json:"type"`
}

// Size holds the summed public depot sizes in bytes.
type Size struct {
	DownloadSizeBytes  int64 `gorm:"column:download_size_bytes;not null;default:0" json:"downloadSizeBytes"`
	InstalledSizeBytes int64 `gorm:"column:installed_size_bytes;not null;default:0" json:"installedSizeBytes"`
}

// Game is the canonical game record.
// ID is assigned by the provider and survives tombstoning, so a repeat create
// resurrects the row instead of inserting a second one.
type Game struct {
	ID                uint64            `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Slug              string            `gorm:"column:slug;size:255;index" json:"slug"`
	Name              string            `gorm:"column:name;size:255;not null" json:"name"`
	Size              Size              `gorm:"embedded" json:"size"`
	ReleaseDate       *time.Time        `gorm:"column:release_date" json:"releaseDate"`
	Description       string            `gorm:"column:description;type:text" json:"description"`
	Score             float64           `gorm:"column:score;not null;default:0" json:"score"`
	PrimaryGenre      *string           `gorm:"column:primary_genre;size:128" json:"primaryGenre"`
	ControllerSupport ControllerSupport `gorm:"column:controller_support;size:16;not null;default:unknown" json:"controllerSupport"`
	Compatibility     Compatibility     `gorm:"column:compatibility;size:16;not null;default:unknown" json:"compatibility"`
	Tags              datatypes.JSON    `gorm:"column:tags" json:"tags" swaggertype:"array,object"`
	Genres            datatypes.JSON    `gorm:"column:genres" json:"genres" swaggertype:"array,object"`
	Developers        datatypes.JSON    `gorm:"column:developers" json:"developers" swaggertype:"array,string"`
	Publishers        datatypes.JSON    `gorm:"column:publishers" json:"publishers" swaggertype:"array,string"`
	CreatedAt         time.Time         `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt         time.Time         `gorm:"column:updated_at" json:"updatedAt"`
	TombstonedAt      gorm.DeletedAt    `gorm:"column:tombstoned_at;index" json:"tombstonedAt,omitempty" swaggertype:"string"`
}

// TableName overrides the table name.
func (Game) TableName() string {
	return "games"
}

// Columns lists every persisted column, used for conflict updates.
func (Game) Columns() []string {
	return []string{
		"slug", "name", "download_size_bytes", "installed_size_bytes",
		"release_date", "description", "score", "primary_genre",
		"controller_support", "compatibility", "tags", "genres",
		"developers", "publishers", "updated_at", "tombstoned_at",
	}
}

// SetTags stores tags as JSON.
func (g *Game) SetTags(tags []Tag) {
	g.Tags = mustJSON(nonNilTags(tags))
}

// SetGenres stores genres as JSON.
func (g *Game) SetGenres(genres []Tag) {
	g.Genres = mustJSON(nonNilTags(genres))
}

// SetDevelopers stores developer names as JSON.
func (g *Game) SetDevelopers(names []string) {
	g.Developers = mustJSON(nonNilStrings(names))
}

// SetPublishers stores publisher names as JSON.
func (g *Game) SetPublishers(names []string) {
	g.Publishers = mustJSON(nonNilStrings(names))
}

// AfterFind folds stored enum values that drifted outside the closed sets
// back onto them.
func (g *Game) AfterFind(tx *gorm.DB) error {
	g.ControllerSupport = ParseControllerSupport(string(g.ControllerSupport))
	g.Compatibility = ParseCompatibility(string(g.Compatibility))
	return nil
}

// TagList decodes the stored tags.
func (g *Game) TagList() []Tag {
	return decodeTags(g.Tags)
}

// GenreList decodes the stored genres.
func (g *Game) GenreList() []Tag {
	return decodeTags(g.Genres)
}

// DeveloperList decodes the stored developers.
func (g *Game) DeveloperList() []string {
	return decodeStrings(g.Developers)
}

// PublisherList decodes the stored publishers.
func (g *Game) PublisherList() []string {
	return decodeStrings(g.Publishers)
}

func mustJSON(v any) datatypes.JSON {
	// []Tag and []string always marshal.
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}

func decodeTags(raw datatypes.JSON) []Tag {
	out := []Tag{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

func decodeStrings(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}

func nonNilTags(tags []Tag) []Tag {
	if tags == nil {
		return []Tag{}
	}
	return tags
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
