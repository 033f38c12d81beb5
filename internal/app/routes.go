package app

import (
	"github.com/gorilla/mux"
	"github.com/nidoapp/nido/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Household
	r.HandleFunc("/api/household", deps.HouseholdHandler.Create).Methods("POST")
	r.HandleFunc("/api/household/current", deps.HouseholdHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/household/current", deps.HouseholdHandler.Update).Methods("PUT")

	// Ledger
	r.HandleFunc("/api/ledger/entry", deps.LedgerHandler.ListEntries).Methods("GET")
	r.HandleFunc("/api/ledger/entry", deps.LedgerHandler.RecordEntry).Methods("POST")
	r.HandleFunc("/api/ledger/entry/{entryId}", deps.LedgerHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/ledger/entry/{entryId}", deps.LedgerHandler.DeleteEntry).Methods("DELETE")
	r.HandleFunc("/api/ledger/balances", deps.LedgerHandler.GetBalances).Methods("GET")
	r.HandleFunc("/api/ledger/snapshot", deps.LedgerHandler.PutSnapshot).Methods("PUT")

	// Settlement
	r.HandleFunc("/api/settlement", deps.SettlementHandler.GetPending).Methods("GET")
	r.HandleFunc("/api/settlement/confirm", deps.SettlementHandler.Confirm).Methods("POST")

	// Peer loans
	r.HandleFunc("/api/loan", deps.LoanHandler.ListLoans).Methods("GET")
	r.HandleFunc("/api/loan", deps.LoanHandler.CreateLoan).Methods("POST")
	r.HandleFunc("/api/loan/net", deps.LoanHandler.GetNetBalance).Methods("GET")
	r.HandleFunc("/api/loan/{loanId}/settled", deps.LoanHandler.MarkSettled).Methods("PUT")
	r.HandleFunc("/api/loan/{loanId}", deps.LoanHandler.DeleteLoan).Methods("DELETE")

	// Mortgage
	r.HandleFunc("/api/mortgage/config", deps.MortgageHandler.GetConfig).Methods("GET")
	r.HandleFunc("/api/mortgage/config", deps.MortgageHandler.SaveConfig).Methods("PUT")
	r.HandleFunc("/api/mortgage/projection", deps.MortgageHandler.GetProjection).Methods("GET")

	// Goals
	r.HandleFunc("/api/goals", deps.GoalHandler.ListGoals).Methods("GET")
	r.HandleFunc("/api/goals", deps.GoalHandler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/goals/{uid}", deps.GoalHandler.UpdateGoal).Methods("PUT")
	r.HandleFunc("/api/goals/{id}", deps.GoalHandler.DeleteGoal).Methods("DELETE")
	r.HandleFunc("/api/goals/{uid}/contributions", deps.GoalHandler.Contribute).Methods("POST")

	// Chores
	r.HandleFunc("/api/chores", deps.ChoreHandler.ListChores).Methods("GET")
	r.HandleFunc("/api/chores", deps.ChoreHandler.CreateChore).Methods("POST")
	r.HandleFunc("/api/chores/{uid}", deps.ChoreHandler.UpdateChore).Methods("PUT")
	r.HandleFunc("/api/chores/{id}", deps.ChoreHandler.DeleteChore).Methods("DELETE")
	r.HandleFunc("/api/chores/{uid}/completions", deps.ChoreHandler.Complete).Methods("POST")
	r.HandleFunc("/api/chores/{uid}/completions", deps.ChoreHandler.History).Methods("GET")

	// Activity feed
	r.HandleFunc("/api/activity", deps.ActivityHandler.ListActivity).Methods("GET")
}
