package mortgage

import (
	"context"
	"errors"
	"fmt"

	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
)

var ErrInvalidFinancing = errors.New("financing percent must be between 50 and 100")
var ErrInvalidTerm = errors.New("term must be at least one year")

// FundsProvider reports how much money the household currently has available.
// The ledger's grand total is plugged in here.
type FundsProvider func(ctx context.Context) (money.Money, error)

type Service interface {
	GetConfig(ctx context.Context) (Config, error)
	SaveConfig(ctx context.Context, cfg Config) error
	ProjectCurrent(ctx context.Context) (Projection, error)
}

type ServiceImpl struct {
	repo  Repository
	costs ClosingCosts
	funds FundsProvider
	clock utils.Clock
}

func NewService(repo Repository, costs ClosingCosts, funds FundsProvider, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, costs: costs, funds: funds, clock: clock}
}

func (s *ServiceImpl) GetConfig(ctx context.Context) (Config, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.GetConfig(ctx, householdId)
}

func (s *ServiceImpl) SaveConfig(ctx context.Context, cfg Config) error {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current household: %w", err)
	}
	if cfg.FinancingPercent < 50 || cfg.FinancingPercent > 100 {
		return ErrInvalidFinancing
	}
	if cfg.TermYears < 1 {
		return ErrInvalidTerm
	}
	return s.repo.SaveConfig(ctx, householdId, cfg)
}

// ProjectCurrent projects the household's stored scenario against the funds
// it has right now.
func (s *ServiceImpl) ProjectCurrent(ctx context.Context) (Projection, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("failed to get current household: %w", err)
	}

	cfg, err := s.repo.GetConfig(ctx, householdId)
	if err != nil {
		return Projection{}, err
	}

	available, err := s.funds(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("projection unavailable: %w", err)
	}

	return Project(cfg, s.costs, available, utils.Today(s.clock)), nil
}
