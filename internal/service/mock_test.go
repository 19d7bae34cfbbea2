package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"activity-service/internal/domain"
	"activity-service/internal/event"
	"activity-service/internal/repository"
)

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	FindByNameFunc                func(ctx context.Context, name string) (*domain.Activity, error)
	FindByNameForUpdateFunc       func(ctx context.Context, name string) (*domain.Activity, error)
	AnyFunc                       func(ctx context.Context) (bool, error)
	CountFunc                     func(ctx context.Context) (int64, error)
	CreateBatchFunc               func(ctx context.Context, activities []*domain.Activity) error
	ListWithParticipantCountsFunc func(ctx context.Context) ([]repository.ActivitySummary, error)
}

func (m *MockActivityRepository) FindByName(ctx context.Context, name string) (*domain.Activity, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockActivityRepository) FindByNameForUpdate(ctx context.Context, name string) (*domain.Activity, error) {
	if m.FindByNameForUpdateFunc != nil {
		return m.FindByNameForUpdateFunc(ctx, name)
	}
	return nil, nil
}

func (m *MockActivityRepository) Any(ctx context.Context) (bool, error) {
	if m.AnyFunc != nil {
		return m.AnyFunc(ctx)
	}
	return false, nil
}

func (m *MockActivityRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockActivityRepository) CreateBatch(ctx context.Context, activities []*domain.Activity) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, activities)
	}
	return nil
}

func (m *MockActivityRepository) ListWithParticipantCounts(ctx context.Context) ([]repository.ActivitySummary, error) {
	if m.ListWithParticipantCountsFunc != nil {
		return m.ListWithParticipantCountsFunc(ctx)
	}
	return nil, nil
}

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	FindByEmailFunc  func(ctx context.Context, email string) (*domain.Student, error)
	FindOrCreateFunc func(ctx context.Context, email string) (*domain.Student, bool, error)
	CountFunc        func(ctx context.Context) (int64, error)
}

func (m *MockStudentRepository) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockStudentRepository) FindOrCreate(ctx context.Context, email string) (*domain.Student, bool, error) {
	if m.FindOrCreateFunc != nil {
		return m.FindOrCreateFunc(ctx, email)
	}
	return &domain.Student{BaseModel: domain.BaseModel{ID: uuid.New()}, Email: email}, true, nil
}

func (m *MockStudentRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockParticipationRepository is a mock implementation of ParticipationRepository
type MockParticipationRepository struct {
	FindByStudentAndActivityFunc func(ctx context.Context, studentID, activityID uuid.UUID) (*domain.Participation, error)
	CountByActivityFunc          func(ctx context.Context, activityID uuid.UUID) (int64, error)
	CountFunc                    func(ctx context.Context) (int64, error)
	CreateFunc                   func(ctx context.Context, participation *domain.Participation) error
	DeleteFunc                   func(ctx context.Context, id uuid.UUID) error
}

func (m *MockParticipationRepository) FindByStudentAndActivity(ctx context.Context, studentID, activityID uuid.UUID) (*domain.Participation, error) {
	if m.FindByStudentAndActivityFunc != nil {
		return m.FindByStudentAndActivityFunc(ctx, studentID, activityID)
	}
	return nil, nil
}

func (m *MockParticipationRepository) CountByActivity(ctx context.Context, activityID uuid.UUID) (int64, error) {
	if m.CountByActivityFunc != nil {
		return m.CountByActivityFunc(ctx, activityID)
	}
	return 0, nil
}

func (m *MockParticipationRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *MockParticipationRepository) Create(ctx context.Context, participation *domain.Participation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, participation)
	}
	return nil
}

func (m *MockParticipationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockStore hands out the mock repositories; Transaction runs fn on the same store
type MockStore struct {
	ActivityRepo      *MockActivityRepository
	StudentRepo       *MockStudentRepository
	ParticipationRepo *MockParticipationRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		ActivityRepo:      &MockActivityRepository{},
		StudentRepo:       &MockStudentRepository{},
		ParticipationRepo: &MockParticipationRepository{},
	}
}

func (m *MockStore) Activities() repository.ActivityRepository           { return m.ActivityRepo }
func (m *MockStore) Students() repository.StudentRepository              { return m.StudentRepo }
func (m *MockStore) Participations() repository.ParticipationRepository { return m.ParticipationRepo }

func (m *MockStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	return fn(m)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.RosterEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt event.RosterEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Events() []event.RosterEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.RosterEvent(nil), p.events...)
}
