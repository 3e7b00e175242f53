package model

import "slices"

// Dog sizes shared by requests and walker preferences.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Time-of-day slots shared by requests and walker availability.
const (
	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
)

var (
	DogSizes     = []string{SizeSmall, SizeMedium, SizeLarge}
	TimeSlots    = []string{TimeMorning, TimeAfternoon, TimeEvening}
	Temperaments = []string{"friendly", "shy", "energetic", "calm", "aggressive"}
	Frequencies  = []string{"once", "daily", "weekly", "weekdays", "weekends"}
)

// IsOneOf reports whether value is a member of vocabulary.
func IsOneOf(value string, vocabulary []string) bool {
	return slices.Contains(vocabulary, value)
}
