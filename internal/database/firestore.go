package database

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// Firestore collection layout, kept compatible with existing stored data.
const (
	colBins      = "Bins"
	colTrucks    = "GarbageTrucks"
	colResidents = "Residents"
	colAlerts    = "Alerts"

	subFillLevel  = "fillLevel"
	subFillWeight = "fillWeight"
)

// Connect initializes the Firebase app from a service account file and returns
// a Firestore client.
func Connect(ctx context.Context, credentialsFile, databaseURL string) (*firestore.Client, error) {
	log.Printf("🔌 Connecting to Firestore (credentials: %s)...", credentialsFile)

	opt := option.WithCredentialsFile(credentialsFile)
	var conf *firebase.Config
	if databaseURL != "" {
		conf = &firebase.Config{DatabaseURL: databaseURL}
	}

	app, err := firebase.NewApp(ctx, conf, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Firestore client: %w", err)
	}

	log.Println("✅ Firestore connection established")
	return client, nil
}

// Store wraps the Firestore client with the queries this service needs.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Store backed by the given Firestore client.
func NewStore(client *firestore.Client) *Store {
	return &Store{client: client}
}
