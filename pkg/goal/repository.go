package goal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrGoalNotFound = errors.New("goal not found")

type Repository interface {
	ListGoals(ctx context.Context, householdId int) ([]Goal, error)
	GetGoalByUid(ctx context.Context, householdId int, uid string) (Goal, error)
	StoreGoal(ctx context.Context, householdId int, goal Goal) (Goal, error)
	UpdateGoal(ctx context.Context, householdId int, goal Goal) (Goal, error)
	UpdateCurrent(ctx context.Context, householdId int, uid string, current money.Money) error
	DeleteGoal(ctx context.Context, householdId int, goalId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListGoals(ctx context.Context, householdId int) ([]Goal, error) {
	query := `SELECT id, uid, name, target, current, color, deadline
				FROM goal WHERE household_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, householdId)
	if err != nil {
		err := fmt.Errorf("could not query goals: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *RepositoryImpl) GetGoalByUid(ctx context.Context, householdId int, uid string) (Goal, error) {
	query := `SELECT id, uid, name, target, current, color, deadline
				FROM goal WHERE household_id = $1 AND uid = $2`
	goal, err := scanGoal(r.db.QueryRow(ctx, query, householdId, uid).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Goal{}, ErrGoalNotFound
		}
		log.Error(err)
		return Goal{}, err
	}
	return goal, nil
}

func (r *RepositoryImpl) StoreGoal(ctx context.Context, householdId int, goal Goal) (Goal, error) {
	query := `INSERT INTO goal (household_id, uid, name, target, current, color, deadline)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		householdId,
		goal.Uid,
		goal.Name,
		int64(goal.Target),
		int64(goal.Current),
		goal.Color,
		goal.Deadline,
	).Scan(&goal.Id)
	if err != nil {
		err := fmt.Errorf("could not insert goal: %w", err)
		log.Error(err)
		return Goal{}, err
	}
	return goal, nil
}

func (r *RepositoryImpl) UpdateGoal(ctx context.Context, householdId int, goal Goal) (Goal, error) {
	query := `UPDATE goal SET name = $3, target = $4, color = $5, deadline = $6
				WHERE household_id = $1 AND uid = $2 RETURNING id, current`
	var current int64
	err := r.db.QueryRow(ctx, query,
		householdId,
		goal.Uid,
		goal.Name,
		int64(goal.Target),
		goal.Color,
		goal.Deadline,
	).Scan(&goal.Id, &current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Goal{}, ErrGoalNotFound
		}
		err := fmt.Errorf("could not update goal: %w", err)
		log.Error(err)
		return Goal{}, err
	}
	goal.Current = money.Money(current)
	return goal, nil
}

func (r *RepositoryImpl) UpdateCurrent(ctx context.Context, householdId int, uid string, current money.Money) error {
	query := `UPDATE goal SET current = $3 WHERE household_id = $1 AND uid = $2`
	tag, err := r.db.Exec(ctx, query, householdId, uid, int64(current))
	if err != nil {
		err := fmt.Errorf("could not update goal progress: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *RepositoryImpl) DeleteGoal(ctx context.Context, householdId int, goalId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM goal WHERE household_id = $1 AND id = $2", householdId, goalId)
	if err != nil {
		err := fmt.Errorf("could not delete goal: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanGoal(scan func(dest ...any) error) (Goal, error) {
	var goal Goal
	var target, current int64
	var deadline *time.Time
	err := scan(&goal.Id, &goal.Uid, &goal.Name, &target, &current, &goal.Color, &deadline)
	if err != nil {
		return Goal{}, fmt.Errorf("could not scan goal: %w", err)
	}
	goal.Target = money.Money(target)
	goal.Current = money.Money(current)
	goal.Deadline = deadline
	return goal, nil
}
