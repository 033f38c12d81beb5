package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrEntryNotFound = errors.New("ledger entry not found")
var ErrSnapshotNotFound = errors.New("initial balance snapshot not found")

// EntryFilter narrows ListEntries. Zero values mean "no constraint".
type EntryFilter struct {
	Owner *household.Owner
	From  time.Time
	To    time.Time
}

type Repository interface {
	ListEntries(ctx context.Context, householdId int, filter EntryFilter) ([]Entry, error)
	AppendEntry(ctx context.Context, householdId int, entry Entry) (Entry, error)
	UpdateEntry(ctx context.Context, householdId int, entry Entry) (Entry, error)
	DeleteEntry(ctx context.Context, householdId int, entryId int) (bool, error)
	DeleteEntryByUid(ctx context.Context, householdId int, uid string) (bool, error)
	GetSnapshot(ctx context.Context, householdId int) (*Snapshot, error)
	PutSnapshot(ctx context.Context, householdId int, snapshot Snapshot) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListEntries(ctx context.Context, householdId int, filter EntryFilter) ([]Entry, error) {
	query := `SELECT id, uid, kind, amount, owner, instrument, category, entry_date, recurring, concept
				FROM ledger_entry WHERE household_id = $1`
	args := []any{householdId}

	if filter.Owner != nil {
		args = append(args, string(*filter.Owner))
		query += fmt.Sprintf(" AND owner = $%d", len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY entry_date, id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query ledger entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var kind, owner, instrument, cat string
		if err := rows.Scan(&e.Id, &e.Uid, &kind, &e.Amount, &owner, &instrument, &cat, &e.Date, &e.Recurring, &e.Concept); err != nil {
			err := fmt.Errorf("could not scan ledger entry: %w", err)
			log.Error(err)
			return nil, err
		}
		e.Kind = Kind(kind)
		e.Owner = household.Owner(owner)
		e.Instrument = Instrument(instrument)
		e.Category = category.Normalize(cat)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *RepositoryImpl) AppendEntry(ctx context.Context, householdId int, entry Entry) (Entry, error) {
	query := `INSERT INTO ledger_entry (household_id, uid, kind, amount, owner, instrument, category, entry_date, recurring, concept)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		householdId,
		entry.Uid,
		string(entry.Kind),
		int64(entry.Amount),
		string(entry.Owner),
		string(entry.Instrument),
		string(entry.Category),
		entry.Date,
		entry.Recurring,
		entry.Concept,
	).Scan(&entry.Id)
	if err != nil {
		err := fmt.Errorf("could not insert ledger entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) UpdateEntry(ctx context.Context, householdId int, entry Entry) (Entry, error) {
	query := `UPDATE ledger_entry SET kind = $3, amount = $4, owner = $5, instrument = $6, category = $7,
				entry_date = $8, recurring = $9, concept = $10
				WHERE household_id = $1 AND id = $2`
	tag, err := r.db.Exec(ctx, query,
		householdId,
		entry.Id,
		string(entry.Kind),
		int64(entry.Amount),
		string(entry.Owner),
		string(entry.Instrument),
		string(entry.Category),
		entry.Date,
		entry.Recurring,
		entry.Concept,
	)
	if err != nil {
		err := fmt.Errorf("could not update ledger entry: %w", err)
		log.Error(err)
		return Entry{}, err
	}
	if tag.RowsAffected() == 0 {
		return Entry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (r *RepositoryImpl) DeleteEntry(ctx context.Context, householdId int, entryId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM ledger_entry WHERE household_id = $1 AND id = $2", householdId, entryId)
	if err != nil {
		err := fmt.Errorf("could not delete ledger entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) DeleteEntryByUid(ctx context.Context, householdId int, uid string) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM ledger_entry WHERE household_id = $1 AND uid = $2", householdId, uid)
	if err != nil {
		err := fmt.Errorf("could not delete ledger entry: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetSnapshot returns the household's active snapshot, or nil when none has
// been configured yet (aggregation then starts from zero).
func (r *RepositoryImpl) GetSnapshot(ctx context.Context, householdId int) (*Snapshot, error) {
	query := `SELECT effective_date, owner, instrument, amount FROM balance_snapshot WHERE household_id = $1`
	rows, err := r.db.Query(ctx, query, householdId)
	if err != nil {
		err := fmt.Errorf("could not query snapshot: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var snapshot *Snapshot
	for rows.Next() {
		var effectiveDate time.Time
		var owner, instrument string
		var amount int64
		if err := rows.Scan(&effectiveDate, &owner, &instrument, &amount); err != nil {
			err := fmt.Errorf("could not scan snapshot row: %w", err)
			log.Error(err)
			return nil, err
		}
		if snapshot == nil {
			snapshot = &Snapshot{
				EffectiveDate: effectiveDate,
				Amounts:       map[household.Owner]map[Instrument]money.Money{},
			}
		}
		o := household.Owner(owner)
		if snapshot.Amounts[o] == nil {
			snapshot.Amounts[o] = map[Instrument]money.Money{}
		}
		snapshot.Amounts[o][Instrument(instrument)] = money.Money(amount)
	}
	return snapshot, rows.Err()
}

// PutSnapshot replaces the household's snapshot. There is exactly one active
// snapshot per household, so the previous rows are removed in the same
// transaction.
func (r *RepositoryImpl) PutSnapshot(ctx context.Context, householdId int, snapshot Snapshot) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM balance_snapshot WHERE household_id = $1", householdId); err != nil {
		err := fmt.Errorf("could not clear previous snapshot: %w", err)
		log.Error(err)
		return err
	}

	query := `INSERT INTO balance_snapshot (household_id, effective_date, owner, instrument, amount)
				VALUES ($1, $2, $3, $4, $5)`
	for owner, byInstrument := range snapshot.Amounts {
		for instrument, amount := range byInstrument {
			if _, err := tx.Exec(ctx, query, householdId, snapshot.EffectiveDate, string(owner), string(instrument), int64(amount)); err != nil {
				err := fmt.Errorf("could not insert snapshot row: %w", err)
				log.Error(err)
				return err
			}
		}
	}
	return tx.Commit(ctx)
}
