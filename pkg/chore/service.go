package chore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/household"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidFrequency = errors.New("frequency must be at least one day")

type Service interface {
	ListChores(ctx context.Context) ([]Chore, error)
	CreateChore(ctx context.Context, chore Chore) (Chore, error)
	UpdateChore(ctx context.Context, chore Chore) (Chore, error)
	DeleteChore(ctx context.Context, choreId int) error
	Complete(ctx context.Context, uid string) (Chore, error)
	History(ctx context.Context, uid string) ([]HistoryEntry, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

// ListChores returns the household's chores most urgent first.
func (s *ServiceImpl) ListChores(ctx context.Context) ([]Chore, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current household: %w", err)
	}
	chores, err := s.repo.ListChores(ctx, householdId)
	if err != nil {
		return nil, err
	}
	Sort(chores, s.clock.Now())
	return chores, nil
}

func (s *ServiceImpl) CreateChore(ctx context.Context, chore Chore) (Chore, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Chore{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if chore.FrequencyDays < 1 {
		return Chore{}, ErrInvalidFrequency
	}
	chore.Uid = uuid.NewString()
	chore.LastCompletedAt = nil
	return s.repo.StoreChore(ctx, householdId, chore)
}

func (s *ServiceImpl) UpdateChore(ctx context.Context, chore Chore) (Chore, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Chore{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if chore.FrequencyDays < 1 {
		return Chore{}, ErrInvalidFrequency
	}
	return s.repo.UpdateChore(ctx, householdId, chore)
}

func (s *ServiceImpl) DeleteChore(ctx context.Context, choreId int) error {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current household: %w", err)
	}
	deleted, err := s.repo.DeleteChore(ctx, householdId, choreId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrChoreNotFound
	}
	return nil
}

// Complete stamps the chore now and appends to its history. This is the only
// transition a chore has; the urgency clock restarts from here.
func (s *ServiceImpl) Complete(ctx context.Context, uid string) (Chore, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Chore{}, fmt.Errorf("failed to get current household: %w", err)
	}

	chore, err := s.repo.GetChoreByUid(ctx, householdId, uid)
	if err != nil {
		return Chore{}, err
	}

	now := s.clock.Now().UTC()
	if err := s.repo.RecordCompletion(ctx, householdId, chore.Id, now); err != nil {
		return Chore{}, err
	}
	chore.LastCompletedAt = &now

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.ChoreCompleted, event_bus.ChoreCompletedPayload{
		ChoreUid:    chore.Uid,
		Name:        chore.Name,
		CompletedAt: now,
	})); err != nil {
		log.Errorf("failed to publish chore completion event: %v", err)
	}

	return chore, nil
}

func (s *ServiceImpl) History(ctx context.Context, uid string) ([]HistoryEntry, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current household: %w", err)
	}
	chore, err := s.repo.GetChoreByUid(ctx, householdId, uid)
	if err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, householdId, chore.Id)
}
