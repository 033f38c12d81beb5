package event_bus

import "time"

const (
	SettlementRecorded EventType = "settlement.recorded"
	GoalCompleted      EventType = "goal.completed"
	LoanSettled        EventType = "loan.settled"
	ChoreCompleted     EventType = "chore.completed"
)

type SettlementRecordedPayload struct {
	Debtor   string
	Creditor string
	// Amount is in minor currency units.
	Amount int64
	Date   time.Time
}

type GoalCompletedPayload struct {
	GoalUid string
	Name    string
	Target  int64
	Current int64
}

type LoanSettledPayload struct {
	LoanUid     string
	Concept     string
	Amount      int64
	SettledDate time.Time
}

type ChoreCompletedPayload struct {
	ChoreUid    string
	Name        string
	CompletedAt time.Time
}
