package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"activity-service/internal/domain"
	"activity-service/internal/dto"
	"activity-service/internal/event"
	"activity-service/internal/metrics"
	"activity-service/internal/repository"
	"activity-service/internal/response"
)

// Roster failure messages
const (
	MsgActivityNotFound = "Activity not found"
	MsgStudentNotFound  = "Student not found"
	MsgAlreadySignedUp  = "Student is already signed up for this activity"
	MsgActivityFull     = "Activity is full"
	MsgNotSignedUp      = "Student is not signed up for this activity"
)

// RosterService defines the interface for signup and unregister
type RosterService interface {
	Signup(ctx context.Context, activityName, email string) (*dto.RosterResponse, error)
	Unregister(ctx context.Context, activityName, email string) (*dto.RosterResponse, error)
}

// rosterServiceImpl is the implementation of RosterService
type rosterServiceImpl struct {
	store     repository.Store
	publisher event.Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewRosterService creates a new instance of RosterService
func NewRosterService(store repository.Store, publisher event.Publisher, m *metrics.Metrics, logger *zap.Logger) RosterService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rosterServiceImpl{
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// Signup enrolls the student identified by email in the named activity.
//
// The activity row is locked for the whole transaction, so the duplicate check,
// the capacity count and the insert of concurrent signups run one after another.
// A student created here is rolled back together with a failing signup.
func (s *rosterServiceImpl) Signup(ctx context.Context, activityName, email string) (resp *dto.RosterResponse, err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordSignup(resultLabel(err))
		}
	}()

	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		activity, err := tx.Activities().FindByNameForUpdate(ctx, activityName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, MsgActivityNotFound, "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to find activity", err.Error())
		}

		student, created, err := tx.Students().FindOrCreate(ctx, email)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to resolve student", err.Error())
		}
		if created {
			s.logger.Debug("Student created", zap.String("email", email))
		}

		_, err = tx.Participations().FindByStudentAndActivity(ctx, student.ID, activity.ID)
		if err == nil {
			return response.NewAppError(response.ErrCodeConflict, MsgAlreadySignedUp, "")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewAppError(response.ErrCodeInternal, "Failed to check existing participation", err.Error())
		}

		count, err := tx.Participations().CountByActivity(ctx, activity.ID)
		if err != nil {
			return response.NewAppError(response.ErrCodeInternal, "Failed to count participants", err.Error())
		}
		if activity.IsFull(count) {
			return response.NewAppError(response.ErrCodeConflict, MsgActivityFull, "")
		}

		participation := &domain.Participation{
			StudentID:  student.ID,
			ActivityID: activity.ID,
		}
		if err := tx.Participations().Create(ctx, participation); err != nil {
			if isDuplicateKeyError(err) {
				return response.NewAppError(response.ErrCodeConflict, MsgAlreadySignedUp, "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to create participation", err.Error())
		}
		return nil
	})
	if err != nil {
		appErr := toAppError(err, "Failed to sign up")
		s.logFailure("Signup failed", activityName, email, appErr)
		return nil, appErr
	}

	s.logger.Info("Student signed up",
		zap.String("activity", activityName),
		zap.String("email", email))
	s.publish(ctx, event.NewRosterEvent(event.TypeSignedUp, activityName, email))

	return dto.NewSignupResponse(activityName, email), nil
}

// Unregister removes the student's participation in the named activity
func (s *rosterServiceImpl) Unregister(ctx context.Context, activityName, email string) (resp *dto.RosterResponse, err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordUnregistration(resultLabel(err))
		}
	}()

	email, err = normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		activity, err := tx.Activities().FindByNameForUpdate(ctx, activityName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, MsgActivityNotFound, "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to find activity", err.Error())
		}

		student, err := tx.Students().FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeNotFound, MsgStudentNotFound, "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to find student", err.Error())
		}

		participation, err := tx.Participations().FindByStudentAndActivity(ctx, student.ID, activity.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeConflict, MsgNotSignedUp, "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to find participation", err.Error())
		}

		if err := tx.Participations().Delete(ctx, participation.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewAppError(response.ErrCodeConflict, MsgNotSignedUp, "")
			}
			return response.NewAppError(response.ErrCodeInternal, "Failed to delete participation", err.Error())
		}
		return nil
	})
	if err != nil {
		appErr := toAppError(err, "Failed to unregister")
		s.logFailure("Unregister failed", activityName, email, appErr)
		return nil, appErr
	}

	s.logger.Info("Student unregistered",
		zap.String("activity", activityName),
		zap.String("email", email))
	s.publish(ctx, event.NewRosterEvent(event.TypeUnregistered, activityName, email))

	return dto.NewUnregisterResponse(activityName, email), nil
}

// publish announces a committed change; a failure is logged and counted only
func (s *rosterServiceImpl) publish(ctx context.Context, evt event.RosterEvent) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Failed to publish roster event",
			zap.String("type", evt.Type),
			zap.String("activity", evt.ActivityName),
			zap.Error(err))
		if s.metrics != nil {
			s.metrics.IncrementEventPublishErrors()
		}
	}
}

func (s *rosterServiceImpl) logFailure(msg, activityName, email string, appErr *response.AppError) {
	fields := []zap.Field{
		zap.String("activity", activityName),
		zap.String("email", email),
		zap.String("code", appErr.Code),
		zap.String("reason", appErr.Message),
	}
	if appErr.Code == response.ErrCodeInternal {
		s.logger.Error(msg, append(fields, zap.String("details", appErr.Details))...)
		return
	}
	s.logger.Info(msg, fields...)
}
