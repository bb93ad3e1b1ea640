// Package normalize maps raw provider fields onto the canonical catalog schema.
//
// Every function is pure and tolerant: unknown tag ids, unmatched primary
// genres and unrecognized HTML entities are dropped or left as-is rather than
// reported as errors.
//
//   - Slugify, ParseGenres, MapTags: names, genres and store tags.
//   - ClassifyController, ClassifyCompatibility: closed enums with explicit defaults.
//   - ResolvePrimaryGenre, CleanDescription, ComputePublicDepotSize.
//   - Score: damped 0-5 review rating.
package normalize
