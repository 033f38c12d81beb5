package household

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrentHousehold(ctx context.Context) (Household, error)
	GetHouseholdByUid(ctx context.Context, uid string) (Household, error)
	CreateHousehold(ctx context.Context, h Household) (Household, error)
	UpdateCurrentHousehold(ctx context.Context, h Household) (Household, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetCurrentHousehold(ctx context.Context) (Household, error) {
	id, err := CurrentId(ctx)
	if err != nil {
		return Household{}, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.GetHousehold(ctx, id)
}

func (s *ServiceImpl) GetHouseholdByUid(ctx context.Context, uid string) (Household, error) {
	return s.repo.GetHouseholdByUid(ctx, uid)
}

func (s *ServiceImpl) CreateHousehold(ctx context.Context, h Household) (Household, error) {
	if h.Uid == "" {
		h.Uid = uuid.NewString()
	}
	if h.Settings.Currency == "" {
		h.Settings.Currency = "EUR"
	}
	id, err := s.repo.CreateHousehold(ctx, h)
	if err != nil {
		return Household{}, err
	}
	h.Id = id
	return h, nil
}

func (s *ServiceImpl) UpdateCurrentHousehold(ctx context.Context, h Household) (Household, error) {
	id, err := CurrentId(ctx)
	if err != nil {
		return Household{}, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.UpdateHousehold(ctx, id, h)
}
