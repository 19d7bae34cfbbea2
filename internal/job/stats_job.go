package job

import (
	"context"
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"activity-service/internal/repository"
)

// RosterGauges receives the values collected by StatsJob
type RosterGauges interface {
	SetRosterTotals(activities, students, participations int64)
	UpdateDBStats(stats sql.DBStats)
}

// DBStatter exposes connection pool statistics; *sql.DB satisfies it
type DBStatter interface {
	Stats() sql.DBStats
}

// StatsJob refreshes roster gauges and connection pool metrics
type StatsJob struct {
	store   repository.Store
	pool    DBStatter
	gauges  RosterGauges
	logger  *zap.Logger
	timeout time.Duration
}

// NewStatsJob creates a new StatsJob instance; pool may be nil
func NewStatsJob(store repository.Store, pool DBStatter, gauges RosterGauges, logger *zap.Logger) *StatsJob {
	return &StatsJob{
		store:   store,
		pool:    pool,
		gauges:  gauges,
		logger:  logger,
		timeout: 5 * time.Second,
	}
}

// Run executes one collection pass. Failures are logged and leave the gauges unchanged.
func (j *StatsJob) Run() {
	defer func() {
		if r := recover(); r != nil {
			j.logger.Error("Panic in roster stats job", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if j.pool != nil {
		j.gauges.UpdateDBStats(j.pool.Stats())
	}

	activities, err := j.store.Activities().Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count activities", zap.Error(err))
		return
	}
	students, err := j.store.Students().Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count students", zap.Error(err))
		return
	}
	participations, err := j.store.Participations().Count(ctx)
	if err != nil {
		j.logger.Error("Failed to count participations", zap.Error(err))
		return
	}

	j.gauges.SetRosterTotals(activities, students, participations)

	j.logger.Debug("Roster stats collected",
		zap.Int64("activities", activities),
		zap.Int64("students", students),
		zap.Int64("participations", participations),
	)
}

// Scheduler runs jobs on cron schedules
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a scheduler whose job panics are recovered and logged
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cronLogger{logger: logger}),
			cron.SkipIfStillRunning(cronLogger{logger: logger}),
		)),
		logger: logger,
	}
}

// Schedule registers job under a standard cron expression or "@every <duration>"
func (s *Scheduler) Schedule(schedule string, name string, job cron.Job) error {
	id, err := s.cron.AddJob(schedule, job)
	if err != nil {
		return err
	}
	s.logger.Info("Job scheduled",
		zap.String("job", name),
		zap.String("schedule", schedule),
		zap.Int("entry_id", int(id)),
	)
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for running jobs")
	}
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
