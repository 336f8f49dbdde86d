package models

import "time"

// MoodLabels is the fixed set of moods a user may log, in the order the
// options endpoint serves them.
var MoodLabels = []string{"excellent", "good", "happy", "ok", "sad", "bad", "terrible"}

// ValidMoodLabel reports whether label is one of MoodLabels.
func ValidMoodLabel(label string) bool {
	for _, l := range MoodLabels {
		if l == label {
			return true
		}
	}
	return false
}

// Mood is a single mood entry for one user on one calendar day. Date carries
// date precision only (midnight UTC).
type Mood struct {
	ID      int64
	Mood    string
	Date    time.Time
	OwnerID int64
}
