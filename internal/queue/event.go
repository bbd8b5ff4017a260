// Package queue defines message payloads exchanged over the message broker.
package queue

// CatalogEvent is published whenever the catalog is mutated. It contains
// enough information for downstream consumers to log, invalidate caches or
// trigger analytics without querying the primary database.
type CatalogEvent struct {
    Action  string `json:"action"` // movie.created | movie.updated | movie.deleted
    MovieID uint64 `json:"movie_id"`
    Title   string `json:"title"`
    At      string `json:"at"` // RFC 3339 timestamp of the mutation
}

// Action values for CatalogEvent.
const (
    ActionMovieCreated = "movie.created"
    ActionMovieUpdated = "movie.updated"
    ActionMovieDeleted = "movie.deleted"
)
