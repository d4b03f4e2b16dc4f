package entity

// Seat is one position in a theater grid, addressed by row and seat number.
// The JSON keys match the stored booked_seats documents.
type Seat struct {
	Row        int `json:"row"`
	SeatNumber int `json:"seatNumber"`
}

// OverlappingSeats returns every requested seat that is already present in
// booked. Order follows the requested slice.
func OverlappingSeats(booked, requested []Seat) []Seat {
	var overlap []Seat
	for _, seat := range requested {
		for _, taken := range booked {
			if seat == taken {
				overlap = append(overlap, seat)
				break
			}
		}
	}
	return overlap
}

// HasDuplicateSeats reports whether the same (row, seatNumber) pair appears
// more than once in the request itself.
func HasDuplicateSeats(seats []Seat) bool {
	seen := make(map[Seat]struct{}, len(seats))
	for _, seat := range seats {
		if _, ok := seen[seat]; ok {
			return true
		}
		seen[seat] = struct{}{}
	}
	return false
}

// SeatsOutsideGrid returns the requested seats that fall outside a grid of
// numberOfRows rows with seatsPerRow seats each. Rows and seat numbers are
// 1-based.
func SeatsOutsideGrid(seats []Seat, numberOfRows, seatsPerRow int) []Seat {
	var outside []Seat
	for _, seat := range seats {
		if seat.Row < 1 || seat.Row > numberOfRows || seat.SeatNumber < 1 || seat.SeatNumber > seatsPerRow {
			outside = append(outside, seat)
		}
	}
	return outside
}
