package database

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"binwatch-backend/internal/models"
)

// AddFillLevel stores a fill-level reading under the bin's fillLevel subcollection.
func (s *Store) AddFillLevel(ctx context.Context, reading models.FillLevelReading) error {
	_, _, err := s.client.Collection(colBins).Doc(reading.BinID).Collection(subFillLevel).Add(ctx, reading)
	if err != nil {
		return fmt.Errorf("error storing fill-level reading for bin %s: %w", reading.BinID, err)
	}
	return nil
}

// AddBinFillWeight stores a weight reading under the bin's fillWeight subcollection.
func (s *Store) AddBinFillWeight(ctx context.Context, reading models.FillWeightReading) error {
	_, _, err := s.client.Collection(colBins).Doc(reading.BinID).Collection(subFillWeight).Add(ctx, reading)
	if err != nil {
		return fmt.Errorf("error storing fill-weight reading for bin %s: %w", reading.BinID, err)
	}
	return nil
}

// AddTruckFillWeight stores a weight reading under the truck's fillWeight subcollection.
func (s *Store) AddTruckFillWeight(ctx context.Context, reading models.FillWeightReading) error {
	_, _, err := s.client.Collection(colTrucks).Doc(reading.TruckID).Collection(subFillWeight).Add(ctx, reading)
	if err != nil {
		return fmt.Errorf("error storing fill-weight reading for truck %s: %w", reading.TruckID, err)
	}
	return nil
}

// RecentFillLevels returns the latest fill-level readings for a bin, newest first.
func (s *Store) RecentFillLevels(ctx context.Context, binID string, limit int) ([]models.StoredReading, error) {
	ref := s.client.Collection(colBins).Doc(binID).Collection(subFillLevel)
	return s.recentReadings(ctx, ref, limit)
}

// RecentBinFillWeights returns the latest weight readings for a bin, newest first.
func (s *Store) RecentBinFillWeights(ctx context.Context, binID string, limit int) ([]models.StoredReading, error) {
	ref := s.client.Collection(colBins).Doc(binID).Collection(subFillWeight)
	return s.recentReadings(ctx, ref, limit)
}

// RecentTruckFillWeights returns the latest weight readings for a truck, newest first.
func (s *Store) RecentTruckFillWeights(ctx context.Context, truckID string, limit int) ([]models.StoredReading, error) {
	ref := s.client.Collection(colTrucks).Doc(truckID).Collection(subFillWeight)
	return s.recentReadings(ctx, ref, limit)
}

func (s *Store) recentReadings(ctx context.Context, ref *firestore.CollectionRef, limit int) ([]models.StoredReading, error) {
	iter := ref.OrderBy("timestamp", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	readings := []models.StoredReading{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error fetching readings: %w", err)
		}

		var reading models.StoredReading
		if err := doc.DataTo(&reading); err != nil {
			return nil, fmt.Errorf("error decoding reading %s: %w", doc.Ref.ID, err)
		}
		reading.ID = doc.Ref.ID
		readings = append(readings, reading)
	}
	return readings, nil
}
