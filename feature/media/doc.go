// Package media consumes asset events: it downloads each referenced image,
// composites box art, extracts dimensions and a blurhash placeholder, and
// stores the result through a Sink.
package media
