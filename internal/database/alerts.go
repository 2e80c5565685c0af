package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"binwatch-backend/internal/models"
)

// MostRecentAlert returns the user's latest alert record by timestamp, or nil
// when the user has never been alerted.
func (s *Store) MostRecentAlert(ctx context.Context, userID string) (*models.AlertRecord, error) {
	iter := s.client.Collection(colAlerts).
		Where("userId", "==", userID).
		OrderBy("timestamp", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying alerts for user %s: %w", userID, err)
	}

	var record models.AlertRecord
	if err := doc.DataTo(&record); err != nil {
		return nil, fmt.Errorf("error decoding alert %s: %w", doc.Ref.ID, err)
	}
	record.ID = doc.Ref.ID
	return &record, nil
}

// RecordAlert appends a new alert record and returns its ID. Records are never
// updated: each notification attempt writes a fresh document. The timestamp is
// assigned server-side via the serverTimestamp field option.
func (s *Store) RecordAlert(ctx context.Context, record models.AlertRecord) (string, error) {
	id := uuid.NewString()
	if _, err := s.client.Collection(colAlerts).Doc(id).Set(ctx, record); err != nil {
		return "", fmt.Errorf("error recording alert for user %s: %w", record.UserID, err)
	}
	return id, nil
}
