package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Topic names one kind of downstream event.
type Topic string

// Produced topics, one per asset family.
const (
	TopicNewImage   Topic = "new_image.save"
	TopicNewBoxArt  Topic = "new_box_art_image.save"
	TopicNewHeroArt Topic = "new_hero_art_image.save"
)

// ImageType is a single-URL asset kind carried by new_image events.
type ImageType string

const (
	ImageBackdrop ImageType = "backdrop"
	ImageBanner   ImageType = "banner"
	ImageIcon     ImageType = "icon"
	ImageLogo     ImageType = "logo"
	ImagePoster   ImageType = "poster"
)

// NewImage announces one single-URL asset.
type NewImage struct {
	AppID uint64    `json:"appID"`
	Type  ImageType `json:"type"`
	URL   string    `json:"url"`
}

// NewBoxArt asks consumers to composite the logo over the background.
type NewBoxArt struct {
	AppID         uint64 `json:"appID"`
	LogoURL       string `json:"logoUrl"`
	BackgroundURL string `json:"backgroundUrl"`
}

// NewHeroArt carries the ranked hero image and up to three gallery screenshots,
// best match first.
type NewHeroArt struct {
	AppID       uint64   `json:"appID"`
	BackdropURL string   `json:"backdropUrl"`
	HeroArtURL  string   `json:"heroArtUrl"`
	Screenshots []string `json:"screenshots"`
}

// Envelope is the wire form of every event on the bus.
type Envelope struct {
	ID         string          `json:"id"`
	Topic      Topic           `json:"topic"`
	AppID      uint64          `json:"appID"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// NewEnvelope wraps payload for topic with a fresh id.
func NewEnvelope(topic Topic, appID uint64, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode %s payload: %w", topic, err)
	}
	return Envelope{
		ID:         uuid.NewString(),
		Topic:      topic,
		AppID:      appID,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Topic, err)
	}
	return nil
}
