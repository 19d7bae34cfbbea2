package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"activity-service/internal/domain"
)

// ParticipationRepository defines the interface for participation data access
type ParticipationRepository interface {
	FindByStudentAndActivity(ctx context.Context, studentID, activityID uuid.UUID) (*domain.Participation, error)
	CountByActivity(ctx context.Context, activityID uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, participation *domain.Participation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// participationRepositoryImpl is the GORM implementation of ParticipationRepository
type participationRepositoryImpl struct {
	db *gorm.DB
}

// NewParticipationRepository creates a new instance of ParticipationRepository
func NewParticipationRepository(db *gorm.DB) ParticipationRepository {
	return &participationRepositoryImpl{db: db}
}

// FindByStudentAndActivity finds the participation of a student in an activity.
// Returns gorm.ErrRecordNotFound when the student is not enrolled.
func (r *participationRepositoryImpl) FindByStudentAndActivity(ctx context.Context, studentID, activityID uuid.UUID) (*domain.Participation, error) {
	var participation domain.Participation
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND activity_id = ?", studentID, activityID).
		First(&participation).Error; err != nil {
		return nil, err
	}
	return &participation, nil
}

// CountByActivity counts the current participations of an activity
func (r *participationRepositoryImpl) CountByActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Participation{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Count returns the number of participations across all activities
func (r *participationRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Participation{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a participation; JoinedAt defaults to the insert time
func (r *participationRepositoryImpl) Create(ctx context.Context, participation *domain.Participation) error {
	if participation.JoinedAt.IsZero() {
		participation.JoinedAt = r.db.NowFunc()
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(participation).Error
}

// Delete removes a participation by ID
func (r *participationRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Participation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
