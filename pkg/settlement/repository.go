package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrDuplicateToken = errors.New("settlement token already used")

// TokenStore persists idempotency tokens for confirmed settlements. A token
// can be stored exactly once; replays of the same confirmation are rejected
// by the store, not by the caller.
type TokenStore interface {
	SaveToken(ctx context.Context, householdId int, token string) error
}

type TokenStoreImpl struct {
	db *pgxpool.Pool
}

func NewTokenStore(db *pgxpool.Pool) *TokenStoreImpl {
	return &TokenStoreImpl{db: db}
}

func (t *TokenStoreImpl) SaveToken(ctx context.Context, householdId int, token string) error {
	query := `INSERT INTO settlement_token (household_id, token) VALUES ($1, $2)`
	_, err := t.db.Exec(ctx, query, householdId, token)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateToken
		}
		err := fmt.Errorf("could not store settlement token: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
