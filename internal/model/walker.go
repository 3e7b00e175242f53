package model

import "time"

// Defaults for a freshly created walker profile.
const (
	DefaultWalkerRating   = 5.0
	DefaultMaxDogsPerWalk = 1
)

// Availability describes when a walker can take dogs out.
type Availability struct {
	Weekdays bool     `json:"weekdays"`
	Weekends bool     `json:"weekends"`
	Times    []string `json:"times"`
}

// Walker is a service provider profile.
// Rating and CompletedWalks are maintained server side only.
type Walker struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Email             string       `json:"email,omitempty"`
	Phone             string       `json:"phone,omitempty"`
	ExperienceYears   int          `json:"experienceYears"`
	HourlyRate        float64      `json:"hourlyRate"`
	MaxDogsPerWalk    int          `json:"maxDogsPerWalk"`
	ServiceAreas      []string     `json:"serviceAreas"`
	PreferredDogSizes []string     `json:"preferredDogSizes"`
	Availability      Availability `json:"availability"`
	Bio               string       `json:"bio,omitempty"`
	OpenToGroupWalks  bool         `json:"openToGroupWalks"`
	Rating            float64      `json:"rating"`
	CompletedWalks    int          `json:"completedWalks"`
	UserID            string       `json:"userId,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

// PrefersSize reports whether the walker lists size among preferred dog sizes.
func (w *Walker) PrefersSize(size string) bool {
	return IsOneOf(size, w.PreferredDogSizes)
}
