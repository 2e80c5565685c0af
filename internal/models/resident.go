package models

import "time"

// Resident is a person registered to one or more bins. Residents are owned by
// the directory service and are read-only here.
type Resident struct {
	ID             string    `json:"id" firestore:"-"`
	FirstName      string    `json:"firstName" firestore:"firstName"`
	Phone          string    `json:"phone" firestore:"phone"` // E.164
	RegisteredBins []string  `json:"registered_bins" firestore:"registered_bins"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}
