package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"binwatch-backend/internal/models"
	"binwatch-backend/internal/services"
	"binwatch-backend/pkg/utils"
)

// readbackLimit caps how many records the GET endpoints return.
const readbackLimit = 10

const storedMessage = "Data received and stored successfully"

// ReadingStore persists sensor readings and serves the read-back queries.
type ReadingStore interface {
	AddFillLevel(ctx context.Context, reading models.FillLevelReading) error
	AddBinFillWeight(ctx context.Context, reading models.FillWeightReading) error
	AddTruckFillWeight(ctx context.Context, reading models.FillWeightReading) error
	RecentFillLevels(ctx context.Context, binID string, limit int) ([]models.StoredReading, error)
	RecentBinFillWeights(ctx context.Context, binID string, limit int) ([]models.StoredReading, error)
	RecentTruckFillWeights(ctx context.Context, truckID string, limit int) ([]models.StoredReading, error)
}

// ReadingEvaluator runs the alert decision pipeline for a stored weight reading.
type ReadingEvaluator interface {
	EvaluateReading(ctx context.Context, reading models.FillWeightReading)
}

func CreateFillLevel(store ReadingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reading models.FillLevelReading
		if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if reading.BinID == "" {
			http.Error(w, "binID is required", http.StatusBadRequest)
			return
		}
		reading.Timestamp = time.Now().UTC()

		if err := store.AddFillLevel(r.Context(), reading); err != nil {
			log.Printf("❌ Error storing data: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Message(w, storedMessage)
	}
}

// CreateFillWeight stores a weight reading and, for bin readings, hands the
// alert evaluation to the dispatcher. The response never waits on alerting.
func CreateFillWeight(store ReadingStore, dispatcher *services.Dispatcher, evaluator ReadingEvaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var reading models.FillWeightReading
		if err := json.NewDecoder(r.Body).Decode(&reading); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if reading.BinID == "" && reading.TruckID == "" {
			http.Error(w, "binID or truckID is required", http.StatusBadRequest)
			return
		}
		reading.Timestamp = time.Now().UTC()

		if reading.BinID != "" {
			if err := store.AddBinFillWeight(r.Context(), reading); err != nil {
				log.Printf("❌ Error storing data: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if dispatcher != nil && evaluator != nil {
				dispatched := reading
				dispatcher.Dispatch(services.Task{
					Name: "notify-residents:" + dispatched.BinID,
					Run: func(ctx context.Context) error {
						evaluator.EvaluateReading(ctx, dispatched)
						return nil
					},
				})
			}
		} else {
			if err := store.AddTruckFillWeight(r.Context(), reading); err != nil {
				log.Printf("❌ Error storing data: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}
		utils.Message(w, storedMessage)
	}
}

func GetFillLevelData(store ReadingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "binId")
		readings, err := store.RecentFillLevels(r.Context(), binID, readbackLimit)
		if err != nil {
			log.Printf("❌ Error fetching fill-level data: %v", err)
			utils.FetchError(w)
			return
		}
		utils.JSON(w, http.StatusOK, readings)
	}
}

func GetBinFillWeightData(store ReadingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		binID := chi.URLParam(r, "binId")
		readings, err := store.RecentBinFillWeights(r.Context(), binID, readbackLimit)
		if err != nil {
			log.Printf("❌ Error fetching fill-weight data: %v", err)
			utils.FetchError(w)
			return
		}
		utils.JSON(w, http.StatusOK, readings)
	}
}

func GetTruckFillWeightData(store ReadingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		truckID := chi.URLParam(r, "truckId")
		readings, err := store.RecentTruckFillWeights(r.Context(), truckID, readbackLimit)
		if err != nil {
			log.Printf("❌ Error fetching fill-weight data: %v", err)
			utils.FetchError(w)
			return
		}
		utils.JSON(w, http.StatusOK, readings)
	}
}
