package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binwatch-backend/internal/handlers"
	"binwatch-backend/internal/models"
	"binwatch-backend/internal/services"
)

type fakeReadingStore struct {
	fillLevels   []models.FillLevelReading
	binWeights   []models.FillWeightReading
	truckWeights []models.FillWeightReading
	addErr       error

	recent    []models.StoredReading
	recentErr error
}

func (f *fakeReadingStore) AddFillLevel(_ context.Context, reading models.FillLevelReading) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.fillLevels = append(f.fillLevels, reading)
	return nil
}

func (f *fakeReadingStore) AddBinFillWeight(_ context.Context, reading models.FillWeightReading) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.binWeights = append(f.binWeights, reading)
	return nil
}

func (f *fakeReadingStore) AddTruckFillWeight(_ context.Context, reading models.FillWeightReading) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.truckWeights = append(f.truckWeights, reading)
	return nil
}

func (f *fakeReadingStore) RecentFillLevels(_ context.Context, _ string, _ int) ([]models.StoredReading, error) {
	return f.recent, f.recentErr
}

func (f *fakeReadingStore) RecentBinFillWeights(_ context.Context, _ string, _ int) ([]models.StoredReading, error) {
	return f.recent, f.recentErr
}

func (f *fakeReadingStore) RecentTruckFillWeights(_ context.Context, _ string, _ int) ([]models.StoredReading, error) {
	return f.recent, f.recentErr
}

type fakeEvaluator struct {
	evaluated chan models.FillWeightReading
}

func (f *fakeEvaluator) EvaluateReading(_ context.Context, reading models.FillWeightReading) {
	f.evaluated <- reading
}

func TestCreateFillLevel(t *testing.T) {
	store := &fakeReadingStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-level", strings.NewReader(`{"binID":"B1","load":"55"}`))

	handlers.CreateFillLevel(store)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Data received and stored successfully")
	require.Len(t, store.fillLevels, 1)
	assert.Equal(t, "B1", store.fillLevels[0].BinID)
	assert.False(t, store.fillLevels[0].Timestamp.IsZero())
}

func TestCreateFillLevel_MissingBinID(t *testing.T) {
	store := &fakeReadingStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-level", strings.NewReader(`{"load":"55"}`))

	handlers.CreateFillLevel(store)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, store.fillLevels)
}

func TestCreateFillLevel_StoreError(t *testing.T) {
	store := &fakeReadingStore{addErr: errors.New("firestore down")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-level", strings.NewReader(`{"binID":"B1","load":"55"}`))

	handlers.CreateFillLevel(store)(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestCreateFillWeight_BinReadingDispatchesEvaluation(t *testing.T) {
	store := &fakeReadingStore{}
	evaluator := &fakeEvaluator{evaluated: make(chan models.FillWeightReading, 1)}
	dispatcher := services.NewDispatcher(4, time.Second)
	go dispatcher.Run()
	defer dispatcher.Stop()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-weight", strings.NewReader(`{"binID":"B1","load":"25"}`))

	handlers.CreateFillWeight(store, dispatcher, evaluator)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.binWeights, 1)

	select {
	case reading := <-evaluator.evaluated:
		assert.Equal(t, "B1", reading.BinID)
		assert.Equal(t, "25", reading.Load)
	case <-time.After(2 * time.Second):
		t.Fatal("evaluation was never dispatched")
	}
}

func TestCreateFillWeight_FullQueueStillStoresAndResponds200(t *testing.T) {
	store := &fakeReadingStore{}
	evaluator := &fakeEvaluator{evaluated: make(chan models.FillWeightReading, 1)}

	// No worker running: one queued task saturates the dispatcher, so the
	// handler's dispatch is refused. Ingestion must not notice.
	dispatcher := services.NewDispatcher(1, time.Second)
	require.True(t, dispatcher.Dispatch(services.Task{
		Name: "filler",
		Run:  func(ctx context.Context) error { return nil },
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-weight", strings.NewReader(`{"binID":"B1","load":"25"}`))

	handlers.CreateFillWeight(store, dispatcher, evaluator)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Data received and stored successfully")
	require.Len(t, store.binWeights, 1)

	select {
	case <-evaluator.evaluated:
		t.Fatal("dropped task must not be evaluated")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCreateFillWeight_TruckReadingSkipsEvaluation(t *testing.T) {
	store := &fakeReadingStore{}
	evaluator := &fakeEvaluator{evaluated: make(chan models.FillWeightReading, 1)}
	dispatcher := services.NewDispatcher(4, time.Second)
	go dispatcher.Run()
	defer dispatcher.Stop()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-weight", strings.NewReader(`{"truckID":"T7","load":"900"}`))

	handlers.CreateFillWeight(store, dispatcher, evaluator)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, store.truckWeights, 1)
	assert.Equal(t, "T7", store.truckWeights[0].TruckID)

	select {
	case <-evaluator.evaluated:
		t.Fatal("truck reading must not trigger alerting")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCreateFillWeight_MissingIDs(t *testing.T) {
	store := &fakeReadingStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-weight", strings.NewReader(`{"load":"25"}`))

	handlers.CreateFillWeight(store, nil, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateFillWeight_NilEvaluatorStillStores(t *testing.T) {
	store := &fakeReadingStore{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/fill-weight", strings.NewReader(`{"binID":"B1","load":"25"}`))

	handlers.CreateFillWeight(store, nil, nil)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, store.binWeights, 1)
}

func newReadbackRouter(store handlers.ReadingStore) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/fill-level-data/{binId}", handlers.GetFillLevelData(store))
	r.Get("/fill-weight-data/bins/{binId}", handlers.GetBinFillWeightData(store))
	r.Get("/fill-weight-data/trucks/{truckId}", handlers.GetTruckFillWeightData(store))
	return r
}

func TestReadbackEndpoints(t *testing.T) {
	store := &fakeReadingStore{recent: []models.StoredReading{
		{ID: "doc-1", BinID: "B1", Load: "25", Timestamp: time.Now()},
	}}
	router := newReadbackRouter(store)

	for _, path := range []string{
		"/fill-level-data/B1",
		"/fill-weight-data/bins/B1",
		"/fill-weight-data/trucks/T7",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"doc-1"`, path)
	}
}

func TestReadbackEndpoints_FetchError(t *testing.T) {
	store := &fakeReadingStore{recentErr: errors.New("firestore down")}
	router := newReadbackRouter(store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fill-level-data/B1", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"msg":"Error fetching data"}`, rec.Body.String())
}
