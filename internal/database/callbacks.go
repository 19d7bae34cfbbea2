package database

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:query_start_time"

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
}

// RegisterMetricsCallbacks times every query, create, update and delete issued through db
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) error {
	cb := db.Callback()

	return errors.Join(
		cb.Query().Before("gorm:query").Register("metrics:query_before", startTimer),
		cb.Query().After("gorm:query").Register("metrics:query_after", recordAs(recorder, "select")),

		cb.Create().Before("gorm:create").Register("metrics:create_before", startTimer),
		cb.Create().After("gorm:create").Register("metrics:create_after", recordAs(recorder, "insert")),

		cb.Update().Before("gorm:update").Register("metrics:update_before", startTimer),
		cb.Update().After("gorm:update").Register("metrics:update_after", recordAs(recorder, "update")),

		cb.Delete().Before("gorm:delete").Register("metrics:delete_before", startTimer),
		cb.Delete().After("gorm:delete").Register("metrics:delete_after", recordAs(recorder, "delete")),
	)
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func recordAs(recorder MetricsRecorder, operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		startTime, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(startTime.(time.Time)), db.Error)
	}
}
