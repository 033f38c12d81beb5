package ledger

import (
	"context"
	"errors"
)

var errStoreUnavailable = errors.New("store unavailable")

type RepositoryStub struct {
	nextId    int
	entries   map[int][]Entry
	snapshots map[int]*Snapshot

	// FailAppendAfter makes AppendEntry fail once the given number of appends
	// has succeeded, to exercise compensation paths in callers. Zero disables.
	FailAppendAfter int
	appendCount     int
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{
		entries:   map[int][]Entry{},
		snapshots: map[int]*Snapshot{},
	}
}

func (s *RepositoryStub) ListEntries(ctx context.Context, householdId int, filter EntryFilter) ([]Entry, error) {
	result := []Entry{}
	for _, e := range s.entries[householdId] {
		if filter.Owner != nil && e.Owner != *filter.Owner {
			continue
		}
		if !filter.From.IsZero() && e.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && e.Date.After(filter.To) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func (s *RepositoryStub) AppendEntry(ctx context.Context, householdId int, entry Entry) (Entry, error) {
	if s.FailAppendAfter > 0 && s.appendCount >= s.FailAppendAfter {
		return Entry{}, errStoreUnavailable
	}
	s.appendCount++
	s.nextId++
	entry.Id = s.nextId
	s.entries[householdId] = append(s.entries[householdId], entry)
	return entry, nil
}

func (s *RepositoryStub) UpdateEntry(ctx context.Context, householdId int, entry Entry) (Entry, error) {
	for i, e := range s.entries[householdId] {
		if e.Id == entry.Id {
			s.entries[householdId][i] = entry
			return entry, nil
		}
	}
	return Entry{}, ErrEntryNotFound
}

func (s *RepositoryStub) DeleteEntry(ctx context.Context, householdId int, entryId int) (bool, error) {
	for i, e := range s.entries[householdId] {
		if e.Id == entryId {
			s.entries[householdId] = append(s.entries[householdId][:i], s.entries[householdId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) DeleteEntryByUid(ctx context.Context, householdId int, uid string) (bool, error) {
	for i, e := range s.entries[householdId] {
		if e.Uid == uid {
			s.entries[householdId] = append(s.entries[householdId][:i], s.entries[householdId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) GetSnapshot(ctx context.Context, householdId int) (*Snapshot, error) {
	return s.snapshots[householdId], nil
}

func (s *RepositoryStub) PutSnapshot(ctx context.Context, householdId int, snapshot Snapshot) error {
	s.snapshots[householdId] = &snapshot
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.entries = map[int][]Entry{}
	s.snapshots = map[int]*Snapshot{}
	s.nextId = 0
	s.FailAppendAfter = 0
	s.appendCount = 0
}
