package model

import "time"

// Show represents one scheduled screening of a movie. Shows are created
// by the ingestion flow when a date/time matrix is expanded and are never
// updated or deleted by this service; seat occupation is mutated by the
// booking subsystem, which is out of scope here.
//
// Fields:
//  ID            – primary key identifier, assigned by the database.
//  MovieID       – external identifier of the movie being screened;
//                  always resolves to an existing Movie because the
//                  ingestion flow ensures the movie before inserting.
//  ShowDateTime  – combined date and time of the screening (UTC).
//  Price         – ticket price for this screening.
//  OccupiedSeats – seat label to occupant identifier; empty at creation.
type Show struct {
	ID            uint64            `json:"id"`            // shows.id
	MovieID       string            `json:"movie"`         // shows.movie_external_id
	ShowDateTime  time.Time         `json:"showDateTime"`  // shows.show_datetime
	Price         float64           `json:"showPrice"`     // shows.price
	OccupiedSeats map[string]string `json:"occupiedSeats"` // shows.occupied_seats (JSON column)
}

// ShowWithMovie pairs a show with its populated movie record. It is the
// unit returned by upcoming-show queries, where callers need both the
// schedule entry and the movie metadata in one pass.
type ShowWithMovie struct {
	Show
	Movie Movie `json:"movieDetails"`
}
