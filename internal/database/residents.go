package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"binwatch-backend/internal/models"
)

// FindByRegisteredBin returns every resident whose registered_bins array
// contains the given bin ID. No match is not an error: the result is simply
// empty.
func (s *Store) FindByRegisteredBin(ctx context.Context, binID string) ([]models.Resident, error) {
	iter := s.client.Collection(colResidents).
		Where("registered_bins", "array-contains", binID).
		Documents(ctx)
	defer iter.Stop()

	residents := []models.Resident{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error querying residents for bin %s: %w", binID, err)
		}

		var resident models.Resident
		if err := doc.DataTo(&resident); err != nil {
			return nil, fmt.Errorf("error decoding resident %s: %w", doc.Ref.ID, err)
		}
		resident.ID = doc.Ref.ID
		residents = append(residents, resident)
	}
	return residents, nil
}

// RecentResidents returns the latest registered residents, newest first.
func (s *Store) RecentResidents(ctx context.Context, limit int) ([]models.Resident, error) {
	iter := s.client.Collection(colResidents).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	residents := []models.Resident{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error fetching residents: %w", err)
		}

		var resident models.Resident
		if err := doc.DataTo(&resident); err != nil {
			return nil, fmt.Errorf("error decoding resident %s: %w", doc.Ref.ID, err)
		}
		resident.ID = doc.Ref.ID
		residents = append(residents, resident)
	}
	return residents, nil
}
