package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"activity-service/internal/database"
	"activity-service/internal/domain"
)

// ActivitySummary is an activity with its live participation count
type ActivitySummary struct {
	ID               uuid.UUID
	Name             string
	Description      string
	Schedule         string
	MaxParticipants  int
	ParticipantCount int64
}

// ActivityRepository defines the interface for activity data access
type ActivityRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Activity, error)
	FindByNameForUpdate(ctx context.Context, name string) (*domain.Activity, error)
	Any(ctx context.Context) (bool, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, activities []*domain.Activity) error
	ListWithParticipantCounts(ctx context.Context) ([]ActivitySummary, error)
}

// activityRepositoryImpl is the GORM implementation of ActivityRepository
type activityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository creates a new instance of ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepositoryImpl{db: db}
}

// FindByName finds an activity by its unique name.
// Returns gorm.ErrRecordNotFound when the activity does not exist.
func (r *activityRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	var activity domain.Activity
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// FindByNameForUpdate finds an activity and locks its row until the surrounding
// transaction ends. Dialects without row locks fall back to a plain read.
func (r *activityRepositoryImpl) FindByNameForUpdate(ctx context.Context, name string) (*domain.Activity, error) {
	query := r.db.WithContext(ctx)
	if database.SupportsRowLocks(r.db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var activity domain.Activity
	if err := query.Where("name = ?", name).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// Any reports whether at least one activity exists
func (r *activityRepositoryImpl) Any(ctx context.Context) (bool, error) {
	var activity domain.Activity
	err := r.db.WithContext(ctx).Select("id").Take(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of activities
func (r *activityRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Activity{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateBatch inserts activities in one statement
func (r *activityRepositoryImpl) CreateBatch(ctx context.Context, activities []*domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&activities).Error
}

// ListWithParticipantCounts returns every activity ordered by name, each with a live count
func (r *activityRepositoryImpl) ListWithParticipantCounts(ctx context.Context) ([]ActivitySummary, error) {
	var summaries []ActivitySummary
	err := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Select(`activities.id, activities.name, activities.description, activities.schedule, activities.max_participants,
			(SELECT COUNT(*) FROM participations WHERE participations.activity_id = activities.id) AS participant_count`).
		Order("activities.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
