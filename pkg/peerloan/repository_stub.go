package peerloan

import (
	"context"
	"time"
)

type RepositoryStub struct {
	nextId int
	loans  map[int][]Loan
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{loans: map[int][]Loan{}}
}

func (s *RepositoryStub) ListLoans(ctx context.Context, householdId int) ([]Loan, error) {
	return append([]Loan{}, s.loans[householdId]...), nil
}

func (s *RepositoryStub) StoreLoan(ctx context.Context, householdId int, loan Loan) (Loan, error) {
	s.nextId++
	loan.Id = s.nextId
	s.loans[householdId] = append(s.loans[householdId], loan)
	return loan, nil
}

func (s *RepositoryStub) GetLoan(ctx context.Context, householdId int, loanId int) (Loan, error) {
	for _, l := range s.loans[householdId] {
		if l.Id == loanId {
			return l, nil
		}
	}
	return Loan{}, ErrLoanNotFound
}

func (s *RepositoryStub) MarkSettled(ctx context.Context, householdId int, loanId int, settledDate time.Time) (bool, error) {
	for i, l := range s.loans[householdId] {
		if l.Id == loanId && !l.Settled {
			l.Settled = true
			l.SettledDate = &settledDate
			s.loans[householdId][i] = l
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) DeleteLoan(ctx context.Context, householdId int, loanId int) (bool, error) {
	for i, l := range s.loans[householdId] {
		if l.Id == loanId {
			s.loans[householdId] = append(s.loans[householdId][:i], s.loans[householdId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Cleanup() {
	s.loans = map[int][]Loan{}
	s.nextId = 0
}
