package entity

// DefaultShowTimings are the fixed daily screening slots every theater
// gets at creation.
var DefaultShowTimings = []string{"10:00", "14:00", "18:00"}

type Theater struct {
	Base
	Name          string   `db:"name"`
	Address       string   `db:"address"`
	City          string   `db:"city"`
	SeatsPerRow   int      `db:"seats_per_row"`
	NumberOfRows  int      `db:"number_of_rows"`
	SeatsCapacity int      `db:"seats_capacity"`
	ShowTimings   []string `db:"show_timings"`
}

// HasShowTiming reports whether slot is one of the theater's configured
// daily screening times.
func (t *Theater) HasShowTiming(slot string) bool {
	for _, timing := range t.ShowTimings {
		if timing == slot {
			return true
		}
	}
	return false
}
