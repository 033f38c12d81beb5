package activity

import (
	"fmt"
	"sync"
	"time"

	"github.com/nidoapp/nido/internal/event_bus"
	"github.com/nidoapp/nido/pkg/money"
)

const DefaultCapacity = 100

// Record is one line in the household activity feed.
type Record struct {
	Id         int
	Type       string
	Message    string
	OccurredAt time.Time
}

// Log keeps the most recent activity records in memory. It is a ring: once
// capacity is reached the oldest record is dropped. The feed is a convenience
// view over events that are already durable elsewhere, so losing it on
// restart is fine.
type Log struct {
	mu       sync.RWMutex
	capacity int
	nextId   int
	records  []Record
}

func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{capacity: capacity}
}

func (l *Log) Add(recordType, message string, occurredAt time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextId++
	l.records = append(l.records, Record{
		Id:         l.nextId,
		Type:       recordType,
		Message:    message,
		OccurredAt: occurredAt,
	})
	if len(l.records) > l.capacity {
		l.records = l.records[len(l.records)-l.capacity:]
	}
}

// List returns the feed newest first.
func (l *Log) List() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	records := make([]Record, len(l.records))
	for i, r := range l.records {
		records[len(records)-1-i] = r
	}
	return records
}

// Subscribe attaches the log to every domain event on the bus.
func (l *Log) Subscribe(eventBus *event_bus.EventBus) {
	event_bus.SubscribeTyped(eventBus, event_bus.SettlementRecorded, func(e event_bus.EventT[event_bus.SettlementRecordedPayload]) error {
		message := fmt.Sprintf("Settlement recorded: %s paid %s to %s",
			e.Data.Debtor, money.Money(e.Data.Amount).Format(), e.Data.Creditor)
		l.Add(string(e.Type), message, e.Timestamp)
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.GoalCompleted, func(e event_bus.EventT[event_bus.GoalCompletedPayload]) error {
		message := fmt.Sprintf("Goal %q reached: %s of %s saved",
			e.Data.Name, money.Money(e.Data.Current).Format(), money.Money(e.Data.Target).Format())
		l.Add(string(e.Type), message, e.Timestamp)
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.LoanSettled, func(e event_bus.EventT[event_bus.LoanSettledPayload]) error {
		message := fmt.Sprintf("Loan settled: %s (%s)", e.Data.Concept, money.Money(e.Data.Amount).Format())
		l.Add(string(e.Type), message, e.Timestamp)
		return nil
	})
	event_bus.SubscribeTyped(eventBus, event_bus.ChoreCompleted, func(e event_bus.EventT[event_bus.ChoreCompletedPayload]) error {
		l.Add(string(e.Type), fmt.Sprintf("Chore done: %s", e.Data.Name), e.Timestamp)
		return nil
	})
}
