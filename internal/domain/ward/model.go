package ward

import (
	"time"

	"github.com/google/uuid"
)

// Wing identifies one of the two wings of a nursing unit.
type Wing string

const (
	WingBlue  Wing = "Blue"
	WingGreen Wing = "Green"
)

// Valid reports whether w is a recognized wing.
func (w Wing) Valid() bool { return w == WingBlue || w == WingGreen }

// BedLabel identifies a bed within a room. Rooms hold at most two beds.
type BedLabel string

const (
	BedA BedLabel = "A"
	BedB BedLabel = "B"
)

// Valid reports whether b is a recognized bed label.
func (b BedLabel) Valid() bool { return b == BedA || b == BedB }

// Room is a single bed slot. The physical room is identified by
// (nursing_unit, wing, room_number); each bed in it is its own row so
// occupancy can be tracked and reserved per bed.
type Room struct {
	ID          uuid.UUID `db:"id" json:"id"`
	NursingUnit int       `db:"nursing_unit" json:"nursing_unit"`
	Wing        Wing      `db:"wing" json:"wing"`
	RoomNumber  int       `db:"room_number" json:"room_number"`
	BedLabel    BedLabel  `db:"bed_label" json:"bed_label"`
	Occupied    bool      `db:"occupied" json:"occupied"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
