package main

import "time"

// nowUTC returns current time in UTC. Used to ensure
// consistent timestamp storage with TIMESTAMPTZ columns.
func nowUTC() time.Time {
	return time.Now().UTC()
}

// loadLocation resolves the configured check-in timezone, falling back to a
// fixed KST offset when the tz database name cannot be loaded.
func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("KST", 9*3600)
	}
	return loc
}

// localDate formats t as the YYYY-MM-DD calendar day in loc. A check-in
// belongs to the day observed by its audience, not to the UTC day.
func localDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
