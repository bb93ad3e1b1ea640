package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAssetType(t *testing.T) {
	for _, raw := range []string{"backdrop", "banner", "icon", "logo", "poster"} {
		got, err := ParseAssetType(raw)
		assert.NoError(t, err)
		assert.Equal(t, AssetType(raw), got)
	}

	_, err := ParseAssetType("heroArt")
	assert.Error(t, err)
	_, err = ParseAssetType("")
	assert.Error(t, err)
}

func TestImageAssetKey(t *testing.T) {
	shot := ImageAsset{AppID: 7, Type: AssetScreenshot, Position: 2, Format: "jpeg"}
	assert.Equal(t, "games/7/screenshot-2.jpg", shot.Key("games"))

	box := ImageAsset{AppID: 7, Type: AssetBoxArt, Format: "png"}
	assert.Equal(t, "games/7/boxArt.png", box.Key("games"))
	assert.Equal(t, "7/boxArt.png", box.Key(""))
}
