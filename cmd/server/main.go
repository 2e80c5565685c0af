package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"binwatch-backend/internal/config"
	"binwatch-backend/internal/database"
	"binwatch-backend/internal/handlers"
	"binwatch-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	alertQueueSize   = 64
	alertTaskTimeout = 30 * time.Second
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 BINWATCH BACKEND SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	log.Println("📂 Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	ctx := context.Background()

	client, err := database.Connect(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseDatabaseURL)
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Firestore connection failed")
		log.Printf("   Error: %v", err)
		log.Println("   Check FIREBASE_CREDENTIALS_FILE and the service account contents")
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	defer client.Close()

	store := database.NewStore(client)

	// SMS alerting degrades gracefully: without Twilio credentials the server
	// still ingests and serves readings, it just never notifies anyone.
	var engine *services.AlertEngine
	if cfg.SMSConfigured() {
		sms := services.NewSMSService(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
		engine = services.NewAlertEngine(store, store, sms, cfg.MaxAllowableBinWeight)
		log.Printf("✅ Alert engine initialized (threshold: %g lbs)", cfg.MaxAllowableBinWeight)
	} else {
		log.Println("⚠️  Twilio credentials not set, SMS alerting disabled")
	}

	dispatcher := services.NewDispatcher(alertQueueSize, alertTaskTimeout)
	go dispatcher.Run()
	log.Println("✅ Alert dispatcher started")

	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Post("/fill-level", handlers.CreateFillLevel(store))
	r.Post("/fill-weight", handlers.CreateFillWeight(store, dispatcher, evaluatorOrNil(engine)))
	r.Get("/fill-level-data/{binId}", handlers.GetFillLevelData(store))
	r.Get("/fill-weight-data/bins/{binId}", handlers.GetBinFillWeightData(store))
	r.Get("/fill-weight-data/trucks/{truckId}", handlers.GetTruckFillWeightData(store))
	r.Get("/residents", handlers.GetResidents(store))

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", cfg.Port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
}

// evaluatorOrNil keeps the handler's nil check working: a typed nil *AlertEngine
// wrapped in the interface would not compare equal to nil.
func evaluatorOrNil(engine *services.AlertEngine) handlers.ReadingEvaluator {
	if engine == nil {
		return nil
	}
	return engine
}
