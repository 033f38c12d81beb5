package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidoapp/nido/internal/config"
	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/activity"
	"github.com/nidoapp/nido/pkg/chore"
	"github.com/nidoapp/nido/pkg/goal"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/ledger"
	"github.com/nidoapp/nido/pkg/money"
	"github.com/nidoapp/nido/pkg/mortgage"
	"github.com/nidoapp/nido/pkg/peerloan"
	"github.com/nidoapp/nido/pkg/settlement"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	HouseholdService household.Service
	HouseholdHandler *household.Handler

	LedgerRepo    ledger.Repository
	LedgerService ledger.Service
	LedgerHandler *ledger.Handler

	SettlementService settlement.Service
	SettlementHandler *settlement.Handler

	LoanRepo    peerloan.Repository
	LoanService peerloan.Service
	LoanHandler *peerloan.Handler

	MortgageService mortgage.Service
	MortgageHandler *mortgage.Handler

	GoalService goal.Service
	GoalHandler *goal.Handler

	ChoreService chore.Service
	ChoreHandler *chore.Handler

	ActivityLog     *activity.Log
	ActivityHandler *activity.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.HouseholdService = household.NewService(household.NewRepo(db))
	deps.HouseholdHandler = household.NewHandler(deps.HouseholdService)

	deps.LedgerRepo = ledger.NewRepository(db)
	deps.LedgerService = ledger.NewService(deps.LedgerRepo, deps.Clock)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService, deps.Clock)

	deps.SettlementService = settlement.NewService(
		deps.LedgerRepo,
		settlement.NewTokenStore(db),
		deps.EventBus,
		deps.Clock,
		money.Money(cfg.Finance.PeaceThreshold),
	)
	deps.SettlementHandler = settlement.NewHandler(deps.SettlementService)

	deps.LoanRepo = peerloan.NewRepository(db)
	deps.LoanService = peerloan.NewService(deps.LoanRepo, deps.EventBus, deps.Clock)
	deps.LoanHandler = peerloan.NewHandler(deps.LoanService)

	closingCosts := mortgage.ClosingCosts{
		Notary:    money.Money(cfg.Finance.NotaryFee),
		Registry:  money.Money(cfg.Finance.RegistryFee),
		Valuation: money.Money(cfg.Finance.ValuationFee),
	}
	deps.MortgageService = mortgage.NewService(
		mortgage.NewRepository(db),
		closingCosts,
		deps.LedgerService.AvailableFunds,
		deps.Clock,
	)
	deps.MortgageHandler = mortgage.NewHandler(deps.MortgageService)

	deps.GoalService = goal.NewService(goal.NewRepository(db), deps.LedgerRepo, deps.EventBus, deps.Clock)
	deps.GoalHandler = goal.NewHandler(deps.GoalService, deps.Clock)

	deps.ChoreService = chore.NewService(chore.NewRepository(db), deps.EventBus, deps.Clock)
	deps.ChoreHandler = chore.NewHandler(deps.ChoreService, deps.Clock)

	deps.ActivityLog = activity.NewLog(cfg.Finance.ActivityLogEntries)
	deps.ActivityLog.Subscribe(deps.EventBus)
	deps.ActivityHandler = activity.NewHandler(deps.ActivityLog)

	return deps
}
