package shift

import (
	"time"

	"github.com/google/uuid"
)

// Shift is one rostered working period for a staff member. Start and end
// times are clock times in HH:MM form; the date carries the day.
type Shift struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StaffID   uuid.UUID `db:"staff_id" json:"staff_id"`
	ShiftDate time.Time `db:"shift_date" json:"shift_date"`
	StartTime string    `db:"start_time" json:"start_time"`
	EndTime   string    `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ShiftDetail joins a shift with the staff member's display name.
type ShiftDetail struct {
	Shift
	StaffName string `json:"staff_name"`
	JobType   string `json:"job_type"`
}
