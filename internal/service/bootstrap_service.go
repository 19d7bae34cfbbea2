package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"activity-service/internal/domain"
	"activity-service/internal/repository"
)

// errAlreadyInitialized ends the seeding transaction without writing anything
var errAlreadyInitialized = errors.New("database already initialized")

// BootstrapService defines the interface for first-run seeding
type BootstrapService interface {
	Initialize(ctx context.Context) (bool, error)
}

// bootstrapServiceImpl is the implementation of BootstrapService
type bootstrapServiceImpl struct {
	store   repository.Store
	catalog *Catalog
	logger  *zap.Logger
}

// NewBootstrapService creates a new instance of BootstrapService.
// A nil catalog selects DefaultCatalog.
func NewBootstrapService(store repository.Store, catalog *Catalog, logger *zap.Logger) BootstrapService {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &bootstrapServiceImpl{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
}

// Initialize installs the catalog when the store holds no activity yet.
// It reports whether anything was written. All rows are written in one
// transaction; any error rolls the whole batch back and must abort startup.
func (s *bootstrapServiceImpl) Initialize(ctx context.Context) (bool, error) {
	if err := s.catalog.Validate(); err != nil {
		return false, fmt.Errorf("invalid seed catalog: %w", err)
	}

	var enrolled int
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		exists, err := tx.Activities().Any(ctx)
		if err != nil {
			return fmt.Errorf("failed to check existing activities: %w", err)
		}
		if exists {
			return errAlreadyInitialized
		}

		activities := make([]*domain.Activity, 0, len(s.catalog.Activities))
		for _, entry := range s.catalog.Activities {
			activities = append(activities, &domain.Activity{
				Name:            entry.Name,
				Description:     entry.Description,
				Schedule:        entry.Schedule,
				MaxParticipants: entry.Capacity(),
			})
		}
		if err := tx.Activities().CreateBatch(ctx, activities); err != nil {
			return fmt.Errorf("failed to create activities: %w", err)
		}

		byName := make(map[string]*domain.Activity, len(activities))
		for _, activity := range activities {
			byName[activity.Name] = activity
		}

		for _, enrollment := range s.catalog.Enrollments {
			activity, ok := byName[enrollment.Activity]
			if !ok {
				return fmt.Errorf("enrollment references unknown activity %q", enrollment.Activity)
			}
			for _, raw := range enrollment.Emails {
				email, err := normalizeEmail(raw)
				if err != nil {
					return err
				}
				student, _, err := tx.Students().FindOrCreate(ctx, email)
				if err != nil {
					return fmt.Errorf("failed to create student %s: %w", email, err)
				}
				if err := tx.Participations().Create(ctx, &domain.Participation{
					StudentID:  student.ID,
					ActivityID: activity.ID,
				}); err != nil {
					return fmt.Errorf("failed to enroll %s in %s: %w", email, activity.Name, err)
				}
				enrolled++
			}
		}
		return nil
	})

	if errors.Is(err, errAlreadyInitialized) {
		s.logger.Info("Database already initialized")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seeding failed: %w", err)
	}

	s.logger.Info("Database initialized with sample data",
		zap.Int("activities", len(s.catalog.Activities)),
		zap.Int("participations", enrolled))
	return true, nil
}
