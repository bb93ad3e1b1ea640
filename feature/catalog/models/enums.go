package models

import "strings"

// TagType distinguishes genres from user-facing store tags.
type TagType string

const (
	TagTypeGenre TagType = "genre"
	TagTypeTag   TagType = "tag"
)

// ControllerSupport is the level of gamepad support a title advertises.
type ControllerSupport string

const (
	ControllerFull    ControllerSupport = "full"
	ControllerPartial ControllerSupport = "partial"
	ControllerUnknown ControllerSupport = "unknown"
)

// ParseControllerSupport maps a raw provider value onto the closed set.
func ParseControllerSupport(raw string) ControllerSupport {
	switch ControllerSupport(strings.ToLower(strings.TrimSpace(raw))) {
	case ControllerFull:
		return ControllerFull
	case ControllerPartial:
		return ControllerPartial
	default:
		return ControllerUnknown
	}
}

// Compatibility is the handheld compatibility tier.
type Compatibility string

const (
	CompatibilityLow     Compatibility = "low"
	CompatibilityMid     Compatibility = "mid"
	CompatibilityHigh    Compatibility = "high"
	CompatibilityUnknown Compatibility = "unknown"
)

// ParseCompatibility maps a stored tier name onto the closed set.
func ParseCompatibility(raw string) Compatibility {
	switch Compatibility(strings.ToLower(strings.TrimSpace(raw))) {
	case CompatibilityLow:
		return CompatibilityLow
	case CompatibilityMid:
		return CompatibilityMid
	case CompatibilityHigh:
		return CompatibilityHigh
	default:
		return CompatibilityUnknown
	}
}
