// Package events defines the asset events produced after a game is created
// and the bus they travel on.
//
// # Topics
//
//   - new_image.save: one single-URL asset (backdrop, banner, icon, logo, poster).
//   - new_box_art_image.save: logo and background to composite downstream.
//   - new_hero_art_image.save: the promoted hero image plus up to three ranked
//     gallery screenshots.
//
// Every event is wrapped in an Envelope with a UUID, so consumers can detect
// duplicates. Producers must not assume exactly-once delivery: two concurrent
// creates of the same game can both publish.
//
// # Buses
//
// MemoryBus fans out synchronously inside the process and is the default.
// RedisBus uses redis pub/sub (bus.driver=redis) for a separate consumer process.
package events
