package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"activity-service/internal/database"
	"activity-service/internal/domain"
	"activity-service/internal/metrics"
	"activity-service/internal/repository"
	"activity-service/internal/response"
)

type testEnv struct {
	db        *gorm.DB
	store     repository.Store
	roster    RosterService
	activity  ActivityService
	bootstrap BootstrapService
	publisher *recordingPublisher
	metrics   *metrics.Metrics
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.New(database.Config{URL: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, zap.NewNop()))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// newTestEnv wires the services over a fresh in-memory store seeded with catalog
func newTestEnv(t *testing.T, catalog *Catalog) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	store := repository.NewStore(db)
	publisher := &recordingPublisher{}
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())

	env := &testEnv{
		db:        db,
		store:     store,
		roster:    NewRosterService(store, publisher, m, zap.NewNop()),
		activity:  NewActivityService(store.Activities()),
		bootstrap: NewBootstrapService(store, catalog, zap.NewNop()),
		publisher: publisher,
		metrics:   m,
	}

	seeded, err := env.bootstrap.Initialize(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)
	return env
}

func (e *testEnv) participants(t *testing.T, activityName string) int64 {
	t.Helper()

	activities, err := e.activity.ListActivities(context.Background())
	require.NoError(t, err)
	entry, ok := activities[activityName]
	require.True(t, ok, "activity %q missing from listing", activityName)
	return entry.Participants
}

func (e *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

func (e *testEnv) studentExists(t *testing.T, email string) bool {
	t.Helper()

	_, err := e.store.Students().FindByEmail(context.Background(), email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

// singleActivityCatalog has one activity with the given capacity and no enrollments
func singleActivityCatalog(name string, capacity int) *Catalog {
	return &Catalog{
		Activities: []CatalogActivity{
			{Name: name, Description: "test", Schedule: "Mondays", MaxParticipants: &capacity},
		},
	}
}

func requireAppError(t *testing.T, err error, code, message string) {
	t.Helper()

	require.Error(t, err)
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr), "expected *response.AppError, got %T", err)
	require.Equal(t, code, appErr.Code)
	if message != "" {
		require.Equal(t, message, appErr.Message)
	}
}

var (
	studentModel       = &domain.Student{}
	activityModel      = &domain.Activity{}
	participationModel = &domain.Participation{}
)
