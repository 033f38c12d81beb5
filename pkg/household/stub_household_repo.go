package household

import (
	"context"
)

type RepoStub struct {
	nextId     int
	households map[int]Household
}

func NewStubRepo() *RepoStub {
	return &RepoStub{households: map[int]Household{}}
}

func (s *RepoStub) CreateHousehold(ctx context.Context, h Household) (int, error) {
	s.nextId++
	h.Id = s.nextId
	s.households[h.Id] = h
	return h.Id, nil
}

func (s *RepoStub) GetHousehold(ctx context.Context, id int) (Household, error) {
	if h, exists := s.households[id]; exists {
		return h, nil
	}
	return Household{}, ErrHouseholdNotFound
}

func (s *RepoStub) GetHouseholdByUid(ctx context.Context, uid string) (Household, error) {
	for _, h := range s.households {
		if h.Uid == uid {
			return h, nil
		}
	}
	return Household{}, ErrHouseholdNotFound
}

func (s *RepoStub) UpdateHousehold(ctx context.Context, id int, h Household) (Household, error) {
	existing, exists := s.households[id]
	if !exists {
		return Household{}, ErrHouseholdNotFound
	}
	h.Id = id
	h.Uid = existing.Uid
	s.households[id] = h
	return h, nil
}

func (s *RepoStub) Cleanup() {
	s.households = map[int]Household{}
	s.nextId = 0
}
