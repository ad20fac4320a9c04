package model

import "time"

// Showing identifies a scheduled screening: one movie in one theater at
// one start time in one presentation version.  Showings are immutable
// once created; seats and booking records reference them by ID.
//
// Fields:
//  ID         – primary key identifier (opaque string, e.g. "S00001").
//  MovieTitle – title of the movie being screened.
//  Theater    – theater in which the screening takes place.
//  Version    – presentation version (e.g. 2D, 3D, IMAX, subtitled).
//  StartTime  – scheduled start of the screening (UTC).
//  CreatedAt  – timestamp of creation.
type Showing struct {
	ID         string    // showings.id
	MovieTitle string    // showings.movie_title
	Theater    string    // showings.theater
	Version    string    // showings.version
	StartTime  time.Time // showings.start_time
	CreatedAt  time.Time // showings.created_at
}
