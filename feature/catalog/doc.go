// Package catalog implements game ingestion and the canonical game record API.
//
// Ingestion is a pipeline:
//  1. fetch: the primary, tag catalog and detail documents are fetched concurrently.
//  2. Assemble: normalize maps them into a models.Game (slug, genres, tags,
//     controller support, compatibility, description, depot sizes, score).
//  3. store: the record is upserted inside a transaction. Re-creating an
//     active game is a no-op; re-creating a tombstoned one resurrects it.
//  4. discovery: after commit, the game's images are re-fetched, ranked, and
//     announced as asset events on the bus.
//
// # Components
//
//   - Service: Ingest, Get, List and Tombstone.
//   - Handler: Exposes the service over HTTP.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /games : Page through active games (limit, offset).
//   - GET /games/:id : Get one active game.
//   - POST /games/:id/ingest : Run the ingestion pipeline for a game.
//   - DELETE /games/:id : Tombstone a game.
package catalog
