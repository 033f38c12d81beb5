package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
)

type Service interface {
	ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error)
	RecordEntry(ctx context.Context, entry Entry) (Entry, error)
	UpdateEntry(ctx context.Context, entry Entry) (Entry, error)
	DeleteEntry(ctx context.Context, entryId int) (bool, error)
	GetSnapshot(ctx context.Context) (*Snapshot, error)
	PutSnapshot(ctx context.Context, snapshot Snapshot) error
	Balances(ctx context.Context, asOf time.Time) (BalanceResult, error)
	AvailableFunds(ctx context.Context) (money.Money, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) ListEntries(ctx context.Context, filter EntryFilter) ([]Entry, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.ListEntries(ctx, householdId, filter)
}

func (s *ServiceImpl) RecordEntry(ctx context.Context, entry Entry) (Entry, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current household: %w", err)
	}
	if entry.Uid == "" {
		entry.Uid = uuid.NewString()
	}
	if entry.Date.IsZero() {
		entry.Date = s.clock.Now()
	}
	return s.repo.AppendEntry(ctx, householdId, entry)
}

func (s *ServiceImpl) UpdateEntry(ctx context.Context, entry Entry) (Entry, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.UpdateEntry(ctx, householdId, entry)
}

func (s *ServiceImpl) DeleteEntry(ctx context.Context, entryId int) (bool, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.DeleteEntry(ctx, householdId, entryId)
}

func (s *ServiceImpl) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.GetSnapshot(ctx, householdId)
}

func (s *ServiceImpl) PutSnapshot(ctx context.Context, snapshot Snapshot) error {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current household: %w", err)
	}
	return s.repo.PutSnapshot(ctx, householdId, snapshot)
}

// Balances recomputes the household's balances from the stored snapshot and
// entries. The computation is repeated from fresh data on every call; nothing
// is cached between reads.
func (s *ServiceImpl) Balances(ctx context.Context, asOf time.Time) (BalanceResult, error) {
	householdId, err := household.CurrentId(ctx)
	if err != nil {
		return BalanceResult{}, fmt.Errorf("failed to get current household: %w", err)
	}

	snapshot, err := s.repo.GetSnapshot(ctx, householdId)
	if err != nil {
		return BalanceResult{}, fmt.Errorf("balances unavailable: %w", err)
	}

	filter := EntryFilter{To: asOf}
	if snapshot != nil {
		filter.From = snapshot.EffectiveDate
	}
	entries, err := s.repo.ListEntries(ctx, householdId, filter)
	if err != nil {
		return BalanceResult{}, fmt.Errorf("balances unavailable: %w", err)
	}

	return ComputeBalances(snapshot, entries, asOf), nil
}

// AvailableFunds is the grand total across all owners and instruments as of
// now. The mortgage projection feeds on this.
func (s *ServiceImpl) AvailableFunds(ctx context.Context) (money.Money, error) {
	result, err := s.Balances(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	return result.GrandTotal, nil
}
