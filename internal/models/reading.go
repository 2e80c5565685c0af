package models

import "time"

// FillLevelReading is one fill-level sample reported by a bin sensor.
type FillLevelReading struct {
	BinID     string    `json:"binID" firestore:"binID"`
	Load      string    `json:"load" firestore:"load"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// FillWeightReading is one weight sample reported by a bin or truck sensor.
// Exactly one of BinID/TruckID is expected to be set.
type FillWeightReading struct {
	BinID     string    `json:"binID,omitempty" firestore:"binID,omitempty"`
	TruckID   string    `json:"truckID,omitempty" firestore:"truckID,omitempty"`
	Load      string    `json:"load" firestore:"load"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}

// StoredReading is a persisted reading as returned by the read-back endpoints.
type StoredReading struct {
	ID        string    `json:"id" firestore:"-"`
	BinID     string    `json:"binID,omitempty" firestore:"binID"`
	TruckID   string    `json:"truckID,omitempty" firestore:"truckID"`
	Load      string    `json:"load" firestore:"load"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}
