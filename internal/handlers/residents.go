package handlers

import (
	"context"
	"log"
	"net/http"

	"binwatch-backend/internal/models"
	"binwatch-backend/pkg/utils"
)

// ResidentLister serves the resident read-back query.
type ResidentLister interface {
	RecentResidents(ctx context.Context, limit int) ([]models.Resident, error)
}

func GetResidents(store ResidentLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		residents, err := store.RecentResidents(r.Context(), readbackLimit)
		if err != nil {
			log.Printf("❌ Error fetching resident data: %v", err)
			utils.FetchError(w)
			return
		}
		utils.JSON(w, http.StatusOK, residents)
	}
}
