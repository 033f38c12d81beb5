package chore

import (
	"context"
	"time"
)

type RepositoryStub struct {
	nextId     int
	nextHistId int
	chores     map[int][]Chore
	history    map[int][]HistoryEntry
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{chores: map[int][]Chore{}, history: map[int][]HistoryEntry{}}
}

func (s *RepositoryStub) ListChores(ctx context.Context, householdId int) ([]Chore, error) {
	return append([]Chore{}, s.chores[householdId]...), nil
}

func (s *RepositoryStub) GetChoreByUid(ctx context.Context, householdId int, uid string) (Chore, error) {
	for _, c := range s.chores[householdId] {
		if c.Uid == uid {
			return c, nil
		}
	}
	return Chore{}, ErrChoreNotFound
}

func (s *RepositoryStub) StoreChore(ctx context.Context, householdId int, chore Chore) (Chore, error) {
	s.nextId++
	chore.Id = s.nextId
	s.chores[householdId] = append(s.chores[householdId], chore)
	return chore, nil
}

func (s *RepositoryStub) UpdateChore(ctx context.Context, householdId int, chore Chore) (Chore, error) {
	for i, c := range s.chores[householdId] {
		if c.Uid == chore.Uid {
			chore.Id = c.Id
			chore.LastCompletedAt = c.LastCompletedAt
			s.chores[householdId][i] = chore
			return chore, nil
		}
	}
	return Chore{}, ErrChoreNotFound
}

func (s *RepositoryStub) DeleteChore(ctx context.Context, householdId int, choreId int) (bool, error) {
	for i, c := range s.chores[householdId] {
		if c.Id == choreId {
			s.chores[householdId] = append(s.chores[householdId][:i], s.chores[householdId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) RecordCompletion(ctx context.Context, householdId int, choreId int, completedAt time.Time) error {
	for i, c := range s.chores[householdId] {
		if c.Id == choreId {
			stamp := completedAt
			c.LastCompletedAt = &stamp
			s.chores[householdId][i] = c
			s.nextHistId++
			s.history[choreId] = append(s.history[choreId], HistoryEntry{
				Id:          s.nextHistId,
				ChoreId:     choreId,
				CompletedAt: completedAt,
			})
			return nil
		}
	}
	return ErrChoreNotFound
}

func (s *RepositoryStub) ListHistory(ctx context.Context, householdId int, choreId int) ([]HistoryEntry, error) {
	history := append([]HistoryEntry{}, s.history[choreId]...)
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

func (s *RepositoryStub) Cleanup() {
	s.chores = map[int][]Chore{}
	s.history = map[int][]HistoryEntry{}
	s.nextId = 0
	s.nextHistId = 0
}
