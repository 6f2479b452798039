package state

import "time"

const dateLayout = "2006-01-02"

// EnsureSunday snaps an ISO date to the same-or-following Sunday. An
// unparseable date falls back to today before snapping, so the result is
// always a valid session key.
func EnsureSunday(iso string) string {
	d, err := time.Parse(dateLayout, iso)
	if err != nil {
		d = time.Now()
	}
	add := (7 - int(d.Weekday())) % 7
	return d.AddDate(0, 0, add).Format(dateLayout)
}
