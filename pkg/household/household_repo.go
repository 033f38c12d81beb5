package household

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrHouseholdNotFound = errors.New("household not found")

type Repo interface {
	CreateHousehold(ctx context.Context, h Household) (int, error)
	GetHousehold(ctx context.Context, id int) (Household, error)
	GetHouseholdByUid(ctx context.Context, uid string) (Household, error)
	UpdateHousehold(ctx context.Context, id int, h Household) (Household, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) CreateHousehold(ctx context.Context, h Household) (int, error) {
	query := `INSERT INTO household (uid, name, currency, partner_a_name, partner_b_name, include_joint_in_settlement)
				VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query,
		h.Uid,
		h.Name,
		h.Settings.Currency,
		h.Settings.PartnerAName,
		h.Settings.PartnerBName,
		h.Settings.IncludeJointInSettlement,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create household: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetHousehold(ctx context.Context, id int) (Household, error) {
	query := `SELECT id, uid, name, currency, partner_a_name, partner_b_name, include_joint_in_settlement
				FROM household WHERE id = $1`
	return r.scanHousehold(r.db.QueryRow(ctx, query, id))
}

func (r *RepoImpl) GetHouseholdByUid(ctx context.Context, uid string) (Household, error) {
	query := `SELECT id, uid, name, currency, partner_a_name, partner_b_name, include_joint_in_settlement
				FROM household WHERE uid = $1`
	return r.scanHousehold(r.db.QueryRow(ctx, query, uid))
}

func (r *RepoImpl) UpdateHousehold(ctx context.Context, id int, h Household) (Household, error) {
	query := `UPDATE household SET name = $2, currency = $3, partner_a_name = $4, partner_b_name = $5,
				include_joint_in_settlement = $6 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		id,
		h.Name,
		h.Settings.Currency,
		h.Settings.PartnerAName,
		h.Settings.PartnerBName,
		h.Settings.IncludeJointInSettlement,
	)
	if err != nil {
		log.Errorf("failed to update household: %v", err)
		return Household{}, err
	}
	if tag.RowsAffected() == 0 {
		return Household{}, ErrHouseholdNotFound
	}
	h.Id = id
	return h, nil
}

func (r *RepoImpl) scanHousehold(row pgx.Row) (Household, error) {
	var h Household
	err := row.Scan(
		&h.Id,
		&h.Uid,
		&h.Name,
		&h.Settings.Currency,
		&h.Settings.PartnerAName,
		&h.Settings.PartnerBName,
		&h.Settings.IncludeJointInSettlement,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Household{}, ErrHouseholdNotFound
		}
		log.Errorf("failed to read household: %v", err)
		return Household{}, err
	}
	return h, nil
}
