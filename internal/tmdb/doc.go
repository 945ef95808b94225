// Package tmdb is the client for The Movie Database v3 API.
//
// It covers the movie lists (popular, top rated, upcoming, now playing,
// trending), search, discover, details with credits/videos/similar appended,
// and similar and recommended titles. Every request waits on a
// shared rate limiter and runs through a circuit breaker so a struggling
// upstream fails fast instead of stalling API handlers.
package tmdb
