package domain

import (
	"errors"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrInvalidBookID = errors.New("invalid ID format")
var ErrNoBooksForYear = errors.New("no books found for the given year")

// Book is the core aggregate. PublishedDate is normalized to midnight UTC;
// the transport layer renders it as a date-only string.
type Book struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Author        string    `json:"author" bson:"author"`
	PublishedDate time.Time `json:"published_date" bson:"published_date"`
	Genre         string    `json:"genre" bson:"genre"`
	Price         float64   `json:"price" bson:"price"`
}
