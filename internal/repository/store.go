package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database session.
// Repositories obtained inside Transaction run on the transaction's connection.
type Store interface {
	Activities() ActivityRepository
	Students() StudentRepository
	Participations() ParticipationRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

// gormStore is the GORM implementation of Store
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a new instance of Store
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Activities() ActivityRepository {
	return NewActivityRepository(s.db)
}

func (s *gormStore) Students() StudentRepository {
	return NewStudentRepository(s.db)
}

func (s *gormStore) Participations() ParticipationRepository {
	return NewParticipationRepository(s.db)
}

// Transaction runs fn in a database transaction.
// The transaction commits when fn returns nil and rolls back on an error or panic.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
