package model

import "time"

// RequestStatus is the lifecycle state of a walking request.
// Any value may replace any other; no transition order is enforced.
type RequestStatus string

const (
	RequestStatusOpen      RequestStatus = "open"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusCompleted RequestStatus = "completed"
)

// RequestStatuses lists every valid status.
var RequestStatuses = []string{
	string(RequestStatusOpen),
	string(RequestStatusMatched),
	string(RequestStatusCompleted),
}

// IsValid checks if the status is part of the vocabulary.
func (s RequestStatus) IsValid() bool {
	return IsOneOf(string(s), RequestStatuses)
}

// Request is an owner's posting looking for a dog walker.
type Request struct {
	ID string `json:"id"`

	// Dog
	DogName      string `json:"dogName"`
	Breed        string `json:"breed"`
	Age          *int   `json:"age,omitempty"`
	Size         string `json:"size,omitempty"`
	Temperament  string `json:"temperament,omitempty"`
	SpecialNeeds string `json:"specialNeeds,omitempty"`

	// Schedule
	Frequency     string `json:"frequency,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`
	Duration      *int   `json:"duration,omitempty"`
	StartDate     string `json:"startDate,omitempty"`

	Location       string   `json:"location"`
	PickupLocation string   `json:"pickupLocation,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`

	// Owner contact
	OwnerName  string `json:"ownerName"`
	OwnerPhone string `json:"ownerPhone,omitempty"`
	OwnerEmail string `json:"ownerEmail"`

	OpenToSocial bool   `json:"openToSocial"`
	SocialNote   string `json:"socialNote,omitempty"`

	Status    RequestStatus `json:"status"`
	CreatedBy string        `json:"createdBy,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
