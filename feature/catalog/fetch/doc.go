// Package fetch retrieves raw provider documents for a game.
//
// Three upstream documents describe a game:
//
//   - Primary (identity): name, genre index, primary genre, store tag ids,
//     controller support, compatibility category, depots, release date,
//     credits and available library assets. Required.
//   - Tag catalog: global tag id to name table. Optional.
//   - Detail: HTML description, genre list, review counts, screenshots. Optional.
//
// Fetch requests all three concurrently and waits for every one to settle.
// Only a primary failure fails the call (ErrProviderUnavailable); the others
// are logged and left nil. The client never retries; the caller owns retry
// policy.
//
// Every request carries the configured User-Agent and passes a shared token
// bucket limiter. Concurrent tag catalog requests are collapsed with
// singleflight. HTTP statuses map to ErrNotFound, ErrRateLimited and
// ErrUpstream, wrapped in *Error with the operation and app id.
package fetch
