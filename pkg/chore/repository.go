package chore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrChoreNotFound = errors.New("chore not found")

type Repository interface {
	ListChores(ctx context.Context, householdId int) ([]Chore, error)
	GetChoreByUid(ctx context.Context, householdId int, uid string) (Chore, error)
	StoreChore(ctx context.Context, householdId int, chore Chore) (Chore, error)
	UpdateChore(ctx context.Context, householdId int, chore Chore) (Chore, error)
	DeleteChore(ctx context.Context, householdId int, choreId int) (bool, error)
	RecordCompletion(ctx context.Context, householdId int, choreId int, completedAt time.Time) error
	ListHistory(ctx context.Context, householdId int, choreId int) ([]HistoryEntry, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListChores(ctx context.Context, householdId int) ([]Chore, error) {
	query := `SELECT id, uid, name, icon, frequency_days, last_completed_at
				FROM chore WHERE household_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, householdId)
	if err != nil {
		err := fmt.Errorf("could not query chores: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	chores := []Chore{}
	for rows.Next() {
		var chore Chore
		if err := rows.Scan(&chore.Id, &chore.Uid, &chore.Name, &chore.Icon, &chore.FrequencyDays, &chore.LastCompletedAt); err != nil {
			err := fmt.Errorf("could not scan chore: %w", err)
			log.Error(err)
			return nil, err
		}
		chores = append(chores, chore)
	}
	return chores, rows.Err()
}

func (r *RepositoryImpl) GetChoreByUid(ctx context.Context, householdId int, uid string) (Chore, error) {
	query := `SELECT id, uid, name, icon, frequency_days, last_completed_at
				FROM chore WHERE household_id = $1 AND uid = $2`
	var chore Chore
	err := r.db.QueryRow(ctx, query, householdId, uid).
		Scan(&chore.Id, &chore.Uid, &chore.Name, &chore.Icon, &chore.FrequencyDays, &chore.LastCompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Chore{}, ErrChoreNotFound
		}
		err := fmt.Errorf("could not read chore: %w", err)
		log.Error(err)
		return Chore{}, err
	}
	return chore, nil
}

func (r *RepositoryImpl) StoreChore(ctx context.Context, householdId int, chore Chore) (Chore, error) {
	query := `INSERT INTO chore (household_id, uid, name, icon, frequency_days)
				VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query, householdId, chore.Uid, chore.Name, chore.Icon, chore.FrequencyDays).Scan(&chore.Id)
	if err != nil {
		err := fmt.Errorf("could not insert chore: %w", err)
		log.Error(err)
		return Chore{}, err
	}
	return chore, nil
}

func (r *RepositoryImpl) UpdateChore(ctx context.Context, householdId int, chore Chore) (Chore, error) {
	query := `UPDATE chore SET name = $3, icon = $4, frequency_days = $5
				WHERE household_id = $1 AND uid = $2 RETURNING id, last_completed_at`
	err := r.db.QueryRow(ctx, query, householdId, chore.Uid, chore.Name, chore.Icon, chore.FrequencyDays).
		Scan(&chore.Id, &chore.LastCompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Chore{}, ErrChoreNotFound
		}
		err := fmt.Errorf("could not update chore: %w", err)
		log.Error(err)
		return Chore{}, err
	}
	return chore, nil
}

func (r *RepositoryImpl) DeleteChore(ctx context.Context, householdId int, choreId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM chore WHERE household_id = $1 AND id = $2", householdId, choreId)
	if err != nil {
		err := fmt.Errorf("could not delete chore: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RecordCompletion appends a history row and stamps the chore in one
// transaction, so the history never disagrees with last_completed_at.
func (r *RepositoryImpl) RecordCompletion(ctx context.Context, householdId int, choreId int, completedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		err := fmt.Errorf("could not begin completion transaction: %w", err)
		log.Error(err)
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE chore SET last_completed_at = $3 WHERE household_id = $1 AND id = $2",
		householdId, choreId, completedAt)
	if err != nil {
		err := fmt.Errorf("could not stamp chore completion: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrChoreNotFound
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO chore_history (chore_id, completed_at) VALUES ($1, $2)",
		choreId, completedAt)
	if err != nil {
		err := fmt.Errorf("could not append chore history: %w", err)
		log.Error(err)
		return err
	}

	return tx.Commit(ctx)
}

func (r *RepositoryImpl) ListHistory(ctx context.Context, householdId int, choreId int) ([]HistoryEntry, error) {
	query := `SELECT h.id, h.chore_id, h.completed_at
				FROM chore_history h JOIN chore c ON c.id = h.chore_id
				WHERE c.household_id = $1 AND h.chore_id = $2
				ORDER BY h.completed_at DESC, h.id DESC`
	rows, err := r.db.Query(ctx, query, householdId, choreId)
	if err != nil {
		err := fmt.Errorf("could not query chore history: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	history := []HistoryEntry{}
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.Id, &entry.ChoreId, &entry.CompletedAt); err != nil {
			err := fmt.Errorf("could not scan chore history entry: %w", err)
			log.Error(err)
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}
