package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"binwatch-backend/internal/models"
)

// AlertLedger is the append-only record of sent alerts.
type AlertLedger interface {
	MostRecentAlert(ctx context.Context, userID string) (*models.AlertRecord, error)
	RecordAlert(ctx context.Context, record models.AlertRecord) (string, error)
}

// ResidentDirectory maps a bin to the residents registered to it.
type ResidentDirectory interface {
	FindByRegisteredBin(ctx context.Context, binID string) ([]models.Resident, error)
}

// NotificationGateway delivers a text message and returns the provider's
// message identifier.
type NotificationGateway interface {
	Send(ctx context.Context, message, phoneNumber string) (string, error)
}

// AlertEngine decides whether an incoming weight reading warrants notifying
// the bin's residents, sends the notifications, and records the outcomes.
type AlertEngine struct {
	ledger    AlertLedger
	directory ResidentDirectory
	gateway   NotificationGateway
	maxWeight float64 // lbs

	now func() time.Time
}

// NewAlertEngine creates an engine with the given collaborators and weight
// threshold in pounds.
func NewAlertEngine(ledger AlertLedger, directory ResidentDirectory, gateway NotificationGateway, maxWeight float64) *AlertEngine {
	return &AlertEngine{
		ledger:    ledger,
		directory: directory,
		gateway:   gateway,
		maxWeight: maxWeight,
		now:       time.Now,
	}
}

// EvaluateReading runs the alert decision pipeline for one weight reading.
// It is purely side-effecting: every internal failure is logged and swallowed
// so that alerting can never block ingestion of the reading itself. A failure
// in one resident's branch does not abort the others.
func (e *AlertEngine) EvaluateReading(ctx context.Context, reading models.FillWeightReading) {
	load, err := strconv.ParseFloat(reading.Load, 64)
	if err != nil || math.IsNaN(load) {
		log.Printf("⚠️  [ALERTS] Unparseable load %q for bin %s, skipping", reading.Load, reading.BinID)
		return
	}
	if load < e.maxWeight {
		return
	}

	residents, err := e.directory.FindByRegisteredBin(ctx, reading.BinID)
	if err != nil {
		log.Printf("❌ [ALERTS] Resident lookup failed for bin %s: %v", reading.BinID, err)
		return
	}
	if len(residents) == 0 {
		log.Printf("ℹ️  [ALERTS] No resident registered to bin %s", reading.BinID)
		return
	}

	for _, resident := range residents {
		e.notifyResident(ctx, reading, resident)
	}
}

func (e *AlertEngine) notifyResident(ctx context.Context, reading models.FillWeightReading, resident models.Resident) {
	alerted, err := e.alertedToday(ctx, resident.ID)
	if err != nil {
		log.Printf("❌ [ALERTS] Ledger check failed for user %s: %v", resident.ID, err)
		return
	}
	if alerted {
		log.Printf("ℹ️  [ALERTS] User %s already alerted today, skipping", resident.ID)
		return
	}

	message := fmt.Sprintf(
		"Hello %s. This is a reminder that your garbage bin is currently %s lbs, above our municipal weight limit of %g lbs. If it remains above the limit, our collection team will not be able to collect it.",
		resident.FirstName, reading.Load, e.maxWeight,
	)

	record := models.AlertRecord{
		Title:     models.AlertTitle,
		Message:   message,
		BinID:     reading.BinID,
		BinWeight: reading.Load,
		UserID:    resident.ID,
		Status:    models.AlertDelivered,
	}

	sid, err := e.gateway.Send(ctx, message, resident.Phone)
	if err != nil {
		log.Printf("❌ [ALERTS] SMS to user %s failed: %v", resident.ID, err)
		record.Status = models.AlertFailed
	}
	record.TwilioSID = sid

	if _, err := e.ledger.RecordAlert(ctx, record); err != nil {
		log.Printf("❌ [ALERTS] Failed to record alert for user %s: %v", resident.ID, err)
	}
}

// alertedToday reports whether the user's most recent alert falls on the
// current calendar day. The comparison is by local year/month/day, not a
// sliding 24-hour window.
func (e *AlertEngine) alertedToday(ctx context.Context, userID string) (bool, error) {
	record, err := e.ledger.MostRecentAlert(ctx, userID)
	if err != nil {
		return false, err
	}
	if record == nil {
		log.Printf("ℹ️  [ALERTS] No alerts found for user %s", userID)
		return false, nil
	}

	now := e.now()
	y1, m1, d1 := record.Timestamp.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2, nil
}
