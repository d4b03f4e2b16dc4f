package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlappingSeats(t *testing.T) {
	booked := []Seat{{Row: 1, SeatNumber: 1}, {Row: 2, SeatNumber: 3}}

	overlap := OverlappingSeats(booked, []Seat{
		{Row: 2, SeatNumber: 3},
		{Row: 4, SeatNumber: 4},
	})
	assert.Equal(t, []Seat{{Row: 2, SeatNumber: 3}}, overlap)

	assert.Empty(t, OverlappingSeats(booked, []Seat{{Row: 5, SeatNumber: 5}}))
	assert.Empty(t, OverlappingSeats(nil, []Seat{{Row: 1, SeatNumber: 1}}))
}

func TestHasDuplicateSeats(t *testing.T) {
	assert.False(t, HasDuplicateSeats([]Seat{{Row: 1, SeatNumber: 1}, {Row: 1, SeatNumber: 2}}))
	assert.True(t, HasDuplicateSeats([]Seat{{Row: 1, SeatNumber: 1}, {Row: 1, SeatNumber: 1}}))
	assert.False(t, HasDuplicateSeats(nil))
}

func TestSeatsOutsideGrid(t *testing.T) {
	seats := []Seat{
		{Row: 1, SeatNumber: 1},
		{Row: 5, SeatNumber: 10},
		{Row: 6, SeatNumber: 1},
		{Row: 1, SeatNumber: 11},
		{Row: 0, SeatNumber: 1},
	}

	outside := SeatsOutsideGrid(seats, 5, 10)
	assert.Equal(t, []Seat{
		{Row: 6, SeatNumber: 1},
		{Row: 1, SeatNumber: 11},
		{Row: 0, SeatNumber: 1},
	}, outside)
}

func TestHasShowTiming(t *testing.T) {
	theater := Theater{ShowTimings: DefaultShowTimings}
	assert.True(t, theater.HasShowTiming("14:00"))
	assert.False(t, theater.HasShowTiming("23:00"))
}
