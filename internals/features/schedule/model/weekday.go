package model

// Weekday values accepted by schedule slots, enforced both in the DTOs and
// by a database check constraint.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

func Weekdays() []string {
	return []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func IsValidWeekday(s string) bool {
	switch s {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	}
	return false
}
