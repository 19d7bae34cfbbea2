package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"activity-service/internal/database"
	"activity-service/internal/domain"
)

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Student, error)
	FindOrCreate(ctx context.Context, email string) (*domain.Student, bool, error)
	Count(ctx context.Context) (int64, error)
}

// studentRepositoryImpl is the GORM implementation of StudentRepository
type studentRepositoryImpl struct {
	db *gorm.DB
}

// NewStudentRepository creates a new instance of StudentRepository
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepositoryImpl{db: db}
}

// FindByEmail finds a student by email.
// Returns gorm.ErrRecordNotFound when the student does not exist.
func (r *studentRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	var student domain.Student
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

// FindOrCreate returns the student with email, inserting an email-only row when absent.
// The boolean result reports whether this call created the row. A concurrent insert of
// the same email is absorbed by the unique index and the existing row is returned.
func (r *studentRepositoryImpl) FindOrCreate(ctx context.Context, email string) (*domain.Student, bool, error) {
	student, err := r.FindByEmail(ctx, email)
	if err == nil {
		return student, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	student = &domain.Student{Email: email}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(student)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 1 {
		return student, true, nil
	}

	// A locking read sees rows committed after a repeatable-read snapshot was taken
	query := r.db.WithContext(ctx)
	if database.SupportsRowLocks(r.db) {
		query = query.Clauses(clause.Locking{Strength: "SHARE"})
	}
	var existing domain.Student
	if err := query.Where("email = ?", email).First(&existing).Error; err != nil {
		return nil, false, err
	}
	return &existing, false, nil
}

// Count returns the number of students
func (r *studentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Student{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
