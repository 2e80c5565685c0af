package models

import "time"

// AlertStatus records the outcome of a notification attempt.
type AlertStatus string

const (
	AlertDelivered AlertStatus = "delivered"
	AlertFailed    AlertStatus = "failed"
)

// AlertTitle is the fixed title written on every weight-limit alert record.
const AlertTitle = "Weight Limit Exceeded"

// AlertRecord is one persisted notification event. Records are append-only:
// they are created once per notification attempt and never updated or deleted.
// The Timestamp field is assigned by the document store on write.
type AlertRecord struct {
	ID        string      `json:"id" firestore:"-"`
	Title     string      `json:"title" firestore:"title"`
	Message   string      `json:"message" firestore:"message"`
	Timestamp time.Time   `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	BinID     string      `json:"binId" firestore:"binId"`
	BinWeight string      `json:"binWeight" firestore:"binWeight"`
	UserID    string      `json:"userId" firestore:"userId"`
	Status    AlertStatus `json:"status" firestore:"status"`
	TwilioSID string      `json:"twilio_sid" firestore:"twilio_sid"`
}
