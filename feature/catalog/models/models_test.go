package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseControllerSupport(t *testing.T) {
	assert.Equal(t, ControllerFull, ParseControllerSupport("full"))
	assert.Equal(t, ControllerPartial, ParseControllerSupport(" Partial "))
	assert.Equal(t, ControllerUnknown, ParseControllerSupport(""))
	assert.Equal(t, ControllerUnknown, ParseControllerSupport("none"))
}

func TestParseCompatibility(t *testing.T) {
	assert.Equal(t, CompatibilityLow, ParseCompatibility("low"))
	assert.Equal(t, CompatibilityMid, ParseCompatibility("MID"))
	assert.Equal(t, CompatibilityHigh, ParseCompatibility("high"))
	assert.Equal(t, CompatibilityUnknown, ParseCompatibility("verified"))
}

func TestGameJSONColumns(t *testing.T) {
	g := &Game{}
	assert.Empty(t, g.TagList())
	assert.Empty(t, g.DeveloperList())

	g.SetTags([]Tag{{Name: "Survival", Slug: "survival", Type: TagTypeTag}})
	g.SetGenres(nil)
	g.SetDevelopers([]string{"Valve"})
	g.SetPublishers(nil)

	assert.JSONEq(t, `[{"name":"Survival","slug":"survival","type":"tag"}]`, string(g.Tags))
	assert.JSONEq(t, `[]`, string(g.Genres))
	assert.Equal(t, []string{"Valve"}, g.DeveloperList())
	assert.Equal(t, []string{}, g.PublisherList())
	assert.Equal(t, "survival", g.TagList()[0].Slug)
}
