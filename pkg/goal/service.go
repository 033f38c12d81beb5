package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/ledger"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrNonPositiveContribution = errors.New("contribution must be positive")
var ErrNonPositiveTarget = errors.New("goal target must be positive")

type Service interface {
	ListGoals(ctx context.Context) ([]Goal, error)
	GetGoal(ctx context.Context, uid string) (Goal, error)
	CreateGoal(ctx context.Context, goal Goal) (Goal, error)
	UpdateGoal(ctx context.Context, goal Goal) (Goal, error)
	DeleteGoal(ctx context.Context, goalId int) error
	Contribute(ctx context.Context, uid string, amount money.Money) (Goal, error)
}

type ServiceImpl struct {
	repo       Repository
	ledgerRepo ledger.Repository
	eventBus   *event_bus.EventBus
	clock      utils.Clock
}

func NewService(repo Repository, ledgerRepo ledger.Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, ledgerRepo: ledgerRepo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) ListGoals(ctx context.Context) ([]Goal, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.ListGoals(ctx, householdId)
}

func (s *ServiceImpl) GetGoal(ctx context.Context, uid string) (Goal, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.GetGoalByUid(ctx, householdId, uid)
}

func (s *ServiceImpl) CreateGoal(ctx context.Context, goal Goal) (Goal, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if goal.Target <= 0 {
		return Goal{}, ErrNonPositiveTarget
	}
	goal.Uid = uuid.NewString()
	goal.Current = 0
	return s.repo.StoreGoal(ctx, householdId, goal)
}

func (s *ServiceImpl) UpdateGoal(ctx context.Context, goal Goal) (Goal, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if goal.Target <= 0 {
		return Goal{}, ErrNonPositiveTarget
	}
	return s.repo.UpdateGoal(ctx, householdId, goal)
}

func (s *ServiceImpl) DeleteGoal(ctx context.Context, goalId int) error {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current household: %w", err)
	}
	deleted, err := s.repo.DeleteGoal(ctx, householdId, goalId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

// Contribute adds a positive amount to a goal and mirrors it in the ledger as
// a savings expense, so the household's free funds shrink by what was put
// aside. Crossing the target publishes a completion event.
func (s *ServiceImpl) Contribute(ctx context.Context, uid string, amount money.Money) (Goal, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Goal{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if amount <= 0 {
		return Goal{}, ErrNonPositiveContribution
	}

	goal, err := s.repo.GetGoalByUid(ctx, householdId, uid)
	if err != nil {
		return Goal{}, err
	}
	wasCompleted := goal.IsCompleted()

	goal.Current += amount
	if err := s.repo.UpdateCurrent(ctx, householdId, uid, goal.Current); err != nil {
		return Goal{}, err
	}

	_, err = s.ledgerRepo.AppendEntry(ctx, householdId, ledger.Entry{
		Uid:        uuid.NewString(),
		Kind:       ledger.Expense,
		Amount:     amount,
		Owner:      household.OwnerJoint,
		Instrument: ledger.Digital,
		Category:   category.Savings,
		Date:       utils.Today(s.clock),
		Concept:    fmt.Sprintf("Contribution to %s", goal.Name),
	})
	if err != nil {
		// roll the progress back so goal and ledger stay in step
		if compErr := s.repo.UpdateCurrent(ctx, householdId, uid, goal.Current-amount); compErr != nil {
			log.Errorf("failed to compensate goal contribution %s: %v", uid, compErr)
			return Goal{}, fmt.Errorf("contribution partially recorded: %w", err)
		}
		return Goal{}, fmt.Errorf("failed to record contribution entry: %w", err)
	}

	if !wasCompleted && goal.IsCompleted() {
		if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.GoalCompleted, event_bus.GoalCompletedPayload{
			GoalUid: goal.Uid,
			Name:    goal.Name,
			Target:  int64(goal.Target),
			Current: int64(goal.Current),
		})); err != nil {
			log.Errorf("failed to publish goal completion event: %v", err)
		}
	}

	return goal, nil
}
