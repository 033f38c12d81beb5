package mortgage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrConfigNotFound = errors.New("mortgage config not found")

type Repository interface {
	GetConfig(ctx context.Context, householdId int) (Config, error)
	SaveConfig(ctx context.Context, householdId int, cfg Config) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetConfig(ctx context.Context, householdId int) (Config, error) {
	query := `SELECT price, property_type, buyer_under_35, financing_percent, annual_rate_percent, term_years,
				net_monthly_income, furnishing_budget, emergency_buffer, monthly_savings
				FROM mortgage_config WHERE household_id = $1`
	var cfg Config
	var price, income, furnishing, emergency, savings int64
	var propertyType string
	err := r.db.QueryRow(ctx, query, householdId).Scan(
		&price,
		&propertyType,
		&cfg.BuyerUnder35,
		&cfg.FinancingPercent,
		&cfg.AnnualRatePercent,
		&cfg.TermYears,
		&income,
		&furnishing,
		&emergency,
		&savings,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Config{}, ErrConfigNotFound
		}
		err := fmt.Errorf("could not read mortgage config: %w", err)
		log.Error(err)
		return Config{}, err
	}
	cfg.Price = money.Money(price)
	cfg.PropertyType = PropertyType(propertyType)
	cfg.NetMonthlyIncome = money.Money(income)
	cfg.FurnishingBudget = money.Money(furnishing)
	cfg.EmergencyBuffer = money.Money(emergency)
	cfg.MonthlySavings = money.Money(savings)
	return cfg, nil
}

// SaveConfig upserts the single scenario a household keeps.
func (r *RepositoryImpl) SaveConfig(ctx context.Context, householdId int, cfg Config) error {
	query := `INSERT INTO mortgage_config (household_id, price, property_type, buyer_under_35, financing_percent,
				annual_rate_percent, term_years, net_monthly_income, furnishing_budget, emergency_buffer, monthly_savings)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				ON CONFLICT (household_id) DO UPDATE SET
					price = EXCLUDED.price,
					property_type = EXCLUDED.property_type,
					buyer_under_35 = EXCLUDED.buyer_under_35,
					financing_percent = EXCLUDED.financing_percent,
					annual_rate_percent = EXCLUDED.annual_rate_percent,
					term_years = EXCLUDED.term_years,
					net_monthly_income = EXCLUDED.net_monthly_income,
					furnishing_budget = EXCLUDED.furnishing_budget,
					emergency_buffer = EXCLUDED.emergency_buffer,
					monthly_savings = EXCLUDED.monthly_savings`
	_, err := r.db.Exec(ctx, query,
		householdId,
		int64(cfg.Price),
		string(cfg.PropertyType),
		cfg.BuyerUnder35,
		cfg.FinancingPercent,
		cfg.AnnualRatePercent,
		cfg.TermYears,
		int64(cfg.NetMonthlyIncome),
		int64(cfg.FurnishingBudget),
		int64(cfg.EmergencyBuffer),
		int64(cfg.MonthlySavings),
	)
	if err != nil {
		err := fmt.Errorf("could not save mortgage config: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
