package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/ledger"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrNothingToSettle = errors.New("nothing to settle")
var ErrStaleSettlement = errors.New("settlement amount is stale, recompute before confirming")
var ErrCompensationFailed = errors.New("settlement partially recorded, compensation failed")

// Pending is a computed settlement waiting for user confirmation. The token
// must be passed back on confirm so a double-submitted confirmation can be
// rejected by the token store.
type Pending struct {
	Result
	Token     string
	Statement string
}

// Receipt describes a confirmed, recorded settlement.
type Receipt struct {
	Debtor   household.Owner
	Creditor household.Owner
	Amount   money.Money
	Date     time.Time
}

type Service interface {
	ComputePending(ctx context.Context) (Pending, error)
	Confirm(ctx context.Context, amount money.Money, token string) (Receipt, error)
}

type ServiceImpl struct {
	ledgerRepo ledger.Repository
	tokens     TokenStore
	eventBus   *event_bus.EventBus
	clock      utils.Clock
	// threshold overrides the dead-zone width; zero means DefaultPeaceThreshold.
	threshold money.Money
}

func NewService(ledgerRepo ledger.Repository, tokens TokenStore, eventBus *event_bus.EventBus, clock utils.Clock, threshold money.Money) *ServiceImpl {
	return &ServiceImpl{ledgerRepo: ledgerRepo, tokens: tokens, eventBus: eventBus, clock: clock, threshold: threshold}
}

// ComputePending pools the household's shared spending and returns the current
// debt together with a fresh confirmation token.
func (s *ServiceImpl) ComputePending(ctx context.Context) (Pending, error) {
	h, err := household.Current(ctx)
	if err != nil {
		return Pending{}, fmt.Errorf("failed to get current household: %w", err)
	}

	result, err := s.compute(ctx, h)
	if err != nil {
		return Pending{}, err
	}

	return Pending{
		Result:    result,
		Token:     uuid.NewString(),
		Statement: result.Statement(h),
	}, nil
}

// Confirm records a previously computed settlement as a pair of ledger
// entries: an expense for the debtor and an income for the creditor, both
// dated today and tagged with the settlement category.
//
// The caller must pass back the exact computed amount; if shared spending
// changed in between, the confirmation is rejected as stale. If the second
// ledger write fails, the first one is compensated by deleting it.
func (s *ServiceImpl) Confirm(ctx context.Context, amount money.Money, token string) (Receipt, error) {
	h, err := household.Current(ctx)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to get current household: %w", err)
	}

	result, err := s.compute(ctx, h)
	if err != nil {
		return Receipt{}, err
	}
	if result.AtPeace {
		return Receipt{}, ErrNothingToSettle
	}
	if result.Amount != amount {
		log.Warnf("stale settlement confirmation: confirmed %d, current %d", amount, result.Amount)
		return Receipt{}, ErrStaleSettlement
	}

	if err := s.tokens.SaveToken(ctx, h.Id, token); err != nil {
		return Receipt{}, err
	}

	today := utils.Today(s.clock)
	concept := fmt.Sprintf("Settlement %s", today.Format("2006-01-02"))

	debtorEntry, err := s.ledgerRepo.AppendEntry(ctx, h.Id, ledger.Entry{
		Uid:        uuid.NewString(),
		Kind:       ledger.Expense,
		Amount:     result.Amount,
		Owner:      result.Debtor,
		Instrument: ledger.Digital,
		Category:   category.Settlement,
		Date:       today,
		Concept:    concept,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to record settlement expense: %w", err)
	}

	_, err = s.ledgerRepo.AppendEntry(ctx, h.Id, ledger.Entry{
		Uid:        uuid.NewString(),
		Kind:       ledger.Income,
		Amount:     result.Amount,
		Owner:      result.Creditor,
		Instrument: ledger.Digital,
		Category:   category.Settlement,
		Date:       today,
		Concept:    concept,
	})
	if err != nil {
		// roll the first write back so the ledger is never left half-settled
		if _, delErr := s.ledgerRepo.DeleteEntryByUid(ctx, h.Id, debtorEntry.Uid); delErr != nil {
			log.Errorf("failed to compensate settlement expense %s: %v", debtorEntry.Uid, delErr)
			return Receipt{}, fmt.Errorf("%w: %v", ErrCompensationFailed, err)
		}
		return Receipt{}, fmt.Errorf("failed to record settlement income: %w", err)
	}

	receipt := Receipt{
		Debtor:   result.Debtor,
		Creditor: result.Creditor,
		Amount:   result.Amount,
		Date:     today,
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.SettlementRecorded, event_bus.SettlementRecordedPayload{
		Debtor:   string(receipt.Debtor),
		Creditor: string(receipt.Creditor),
		Amount:   int64(receipt.Amount),
		Date:     receipt.Date,
	})); err != nil {
		log.Errorf("failed to publish settlement event: %v", err)
	}

	return receipt, nil
}

func (s *ServiceImpl) compute(ctx context.Context, h household.Household) (Result, error) {
	filter := ledger.EntryFilter{To: utils.Today(s.clock)}
	snapshot, err := s.ledgerRepo.GetSnapshot(ctx, h.Id)
	if err != nil {
		return Result{}, fmt.Errorf("settlement unavailable: %w", err)
	}
	if snapshot != nil {
		filter.From = snapshot.EffectiveDate
	}

	entries, err := s.ledgerRepo.ListEntries(ctx, h.Id, filter)
	if err != nil {
		return Result{}, fmt.Errorf("settlement unavailable: %w", err)
	}

	return Compute(entries, PoolConfig{
		IncludeJoint:   h.Settings.IncludeJointInSettlement,
		PeaceThreshold: s.threshold,
	}), nil
}
