package entity

import (
	"time"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Duration    int       `db:"duration"` // minutes
	ReleaseDate time.Time `db:"release_date"`
	Genre       []string  `db:"genre"`
	Language    []string  `db:"language"`
	Poster      string    `db:"poster"`
}
