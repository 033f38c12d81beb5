package peerloan

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

var ErrSelfLoan = errors.New("a loan needs two different people")
var ErrNotAPartner = errors.New("loans only run between the two partners")
var ErrNonPositiveAmount = errors.New("loan amount must be positive")

type Service interface {
	ListLoans(ctx context.Context) ([]Loan, error)
	CreateLoan(ctx context.Context, loan Loan) (Loan, error)
	NetBalance(ctx context.Context) (NetResult, error)
	MarkSettled(ctx context.Context, loanId int) (Loan, error)
	DeleteLoan(ctx context.Context, loanId int) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) ListLoans(ctx context.Context) ([]Loan, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.ListLoans(ctx, householdId)
}

func (s *ServiceImpl) CreateLoan(ctx context.Context, loan Loan) (Loan, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Loan{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if !loan.From.IsPartner() || !loan.To.IsPartner() {
		return Loan{}, ErrNotAPartner
	}
	if loan.From == loan.To {
		return Loan{}, ErrSelfLoan
	}
	if loan.Amount <= 0 {
		return Loan{}, ErrNonPositiveAmount
	}
	if loan.Uid == "" {
		loan.Uid = uuid.NewString()
	}
	if loan.Date.IsZero() {
		loan.Date = utils.Today(s.clock)
	}
	loan.Settled = false
	loan.SettledDate = nil
	return s.repo.StoreLoan(ctx, householdId, loan)
}

// NetBalance collapses the household's open loans into a single signed debt
// with a display statement.
func (s *ServiceImpl) NetBalance(ctx context.Context) (NetResult, error) {
	h, err := household.Current(ctx)
	if err != nil {
		return NetResult{}, fmt.Errorf("failed to get current household: %w", err)
	}
	loans, err := s.repo.ListLoans(ctx, h.Id)
	if err != nil {
		return NetResult{}, err
	}
	return Net(loans, h), nil
}

// MarkSettled settles one loan. Settling an already-settled loan is a no-op:
// the loan is returned unchanged and the net balance is unaffected.
func (s *ServiceImpl) MarkSettled(ctx context.Context, loanId int) (Loan, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Loan{}, fmt.Errorf("failed to get current household: %w", err)
	}

	settledDate := utils.Today(s.clock)
	changed, err := s.repo.MarkSettled(ctx, householdId, loanId, settledDate)
	if err != nil {
		return Loan{}, err
	}

	loan, err := s.repo.GetLoan(ctx, householdId, loanId)
	if err != nil {
		return Loan{}, err
	}

	if changed {
		if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.LoanSettled, event_bus.LoanSettledPayload{
			LoanUid:     loan.Uid,
			Concept:     loan.Concept,
			Amount:      int64(loan.Amount),
			SettledDate: settledDate,
		})); err != nil {
			log.Errorf("failed to publish loan settled event: %v", err)
		}
	}
	return loan, nil
}

func (s *ServiceImpl) DeleteLoan(ctx context.Context, loanId int) (bool, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.DeleteLoan(ctx, householdId, loanId)
}
