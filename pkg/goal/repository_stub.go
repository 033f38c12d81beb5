package goal

import (
	"context"

	"github.com/nidoapp/nido/pkg/money"
)

type RepositoryStub struct {
	nextId int
	goals  map[int][]Goal
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{goals: map[int][]Goal{}}
}

func (s *RepositoryStub) ListGoals(ctx context.Context, householdId int) ([]Goal, error) {
	return append([]Goal{}, s.goals[householdId]...), nil
}

func (s *RepositoryStub) GetGoalByUid(ctx context.Context, householdId int, uid string) (Goal, error) {
	for _, g := range s.goals[householdId] {
		if g.Uid == uid {
			return g, nil
		}
	}
	return Goal{}, ErrGoalNotFound
}

func (s *RepositoryStub) StoreGoal(ctx context.Context, householdId int, goal Goal) (Goal, error) {
	s.nextId++
	goal.Id = s.nextId
	s.goals[householdId] = append(s.goals[householdId], goal)
	return goal, nil
}

func (s *RepositoryStub) UpdateGoal(ctx context.Context, householdId int, goal Goal) (Goal, error) {
	for i, g := range s.goals[householdId] {
		if g.Uid == goal.Uid {
			goal.Id = g.Id
			goal.Current = g.Current
			s.goals[householdId][i] = goal
			return goal, nil
		}
	}
	return Goal{}, ErrGoalNotFound
}

func (s *RepositoryStub) UpdateCurrent(ctx context.Context, householdId int, uid string, current money.Money) error {
	for i, g := range s.goals[householdId] {
		if g.Uid == uid {
			g.Current = current
			s.goals[householdId][i] = g
			return nil
		}
	}
	return ErrGoalNotFound
}

func (s *RepositoryStub) DeleteGoal(ctx context.Context, householdId int, goalId int) (bool, error) {
	for i, g := range s.goals[householdId] {
		if g.Id == goalId {
			s.goals[householdId] = append(s.goals[householdId][:i], s.goals[householdId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.goals = map[int][]Goal{}
	s.nextId = 0
}
