package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/google/uuid"
)

type initiativeService struct {
	initiatives repository.InitiativeRepo
	observer    UseCaseObserver
}

func NewInitiativeService(initiatives repository.InitiativeRepo, observers ...UseCaseObserver) InitiativeService {
	return &initiativeService{
		initiatives: initiatives,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *initiativeService) Create(ctx context.Context, i *domain.Initiative) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-initiative",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"short_id": i.ShortID},
		})
	}()

	i.Name = strings.TrimSpace(i.Name)
	var errs []error
	if err := i.ValidateShortID(); err != nil {
		errs = append(errs, err)
	}
	if i.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if i.Status != "" && !validStatus(i.Status) {
		errs = append(errs, fmt.Errorf("unknown status %q", i.Status))
	}
	if len(errs) > 0 {
		return formatValidationErrors(errs)
	}

	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Second)
	i.CreatedAt = now
	i.UpdatedAt = now
	if i.Status == "" {
		i.Status = domain.InitiativeActive
	}
	return s.initiatives.Create(ctx, i)
}

func (s *initiativeService) GetByID(ctx context.Context, id string) (*domain.Initiative, error) {
	return s.initiatives.GetByID(ctx, id)
}

func (s *initiativeService) GetByShortID(ctx context.Context, shortID string) (*domain.Initiative, error) {
	return s.initiatives.GetByShortID(ctx, shortID)
}

func (s *initiativeService) List(ctx context.Context, includeArchived bool) ([]*domain.Initiative, error) {
	return s.initiatives.List(ctx, includeArchived)
}

func (s *initiativeService) Update(ctx context.Context, i *domain.Initiative) error {
	if err := i.ValidateShortID(); err != nil {
		return err
	}
	i.UpdatedAt = time.Now().UTC()
	return s.initiatives.Update(ctx, i)
}

func (s *initiativeService) Archive(ctx context.Context, id string) error {
	return s.initiatives.Archive(ctx, id)
}

func (s *initiativeService) Unarchive(ctx context.Context, id string) error {
	return s.initiatives.Unarchive(ctx, id)
}

func (s *initiativeService) Delete(ctx context.Context, id string, force bool) error {
	if !force {
		i, err := s.initiatives.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if i.Status != domain.InitiativeArchived {
			return fmt.Errorf("initiative must be archived before deletion (use --force to override)")
		}
	}
	return s.initiatives.Delete(ctx, id)
}

func validStatus(s domain.InitiativeStatus) bool {
	switch s {
	case domain.InitiativeActive, domain.InitiativePaused, domain.InitiativeDone, domain.InitiativeArchived:
		return true
	}
	return false
}
