package peerloan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

var ErrLoanNotFound = errors.New("loan not found")

type Repository interface {
	ListLoans(ctx context.Context, householdId int) ([]Loan, error)
	StoreLoan(ctx context.Context, householdId int, loan Loan) (Loan, error)
	GetLoan(ctx context.Context, householdId int, loanId int) (Loan, error)
	MarkSettled(ctx context.Context, householdId int, loanId int, settledDate time.Time) (bool, error)
	DeleteLoan(ctx context.Context, householdId int, loanId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListLoans(ctx context.Context, householdId int) ([]Loan, error) {
	query := `SELECT id, uid, amount, lender, borrower, loan_date, concept, settled, settled_date
				FROM peer_loan WHERE household_id = $1 ORDER BY loan_date, id`
	rows, err := r.db.Query(ctx, query, householdId)
	if err != nil {
		err := fmt.Errorf("could not query loans: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	loans := []Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *RepositoryImpl) StoreLoan(ctx context.Context, householdId int, loan Loan) (Loan, error) {
	query := `INSERT INTO peer_loan (household_id, uid, amount, lender, borrower, loan_date, concept, settled)
				VALUES ($1, $2, $3, $4, $5, $6, $7, false) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		householdId,
		loan.Uid,
		int64(loan.Amount),
		string(loan.From),
		string(loan.To),
		loan.Date,
		loan.Concept,
	).Scan(&loan.Id)
	if err != nil {
		err := fmt.Errorf("could not insert loan: %w", err)
		log.Error(err)
		return Loan{}, err
	}
	return loan, nil
}

func (r *RepositoryImpl) GetLoan(ctx context.Context, householdId int, loanId int) (Loan, error) {
	query := `SELECT id, uid, amount, lender, borrower, loan_date, concept, settled, settled_date
				FROM peer_loan WHERE household_id = $1 AND id = $2`
	loan, err := scanLoan(r.db.QueryRow(ctx, query, householdId, loanId).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Loan{}, ErrLoanNotFound
		}
		log.Error(err)
		return Loan{}, err
	}
	return loan, nil
}

// MarkSettled flips a loan to settled. Already-settled loans are left
// untouched so the settled date of the first settlement is preserved.
func (r *RepositoryImpl) MarkSettled(ctx context.Context, householdId int, loanId int, settledDate time.Time) (bool, error) {
	query := `UPDATE peer_loan SET settled = true, settled_date = $3
				WHERE household_id = $1 AND id = $2 AND settled = false`
	tag, err := r.db.Exec(ctx, query, householdId, loanId, settledDate)
	if err != nil {
		err := fmt.Errorf("could not mark loan settled: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) DeleteLoan(ctx context.Context, householdId int, loanId int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM peer_loan WHERE household_id = $1 AND id = $2", householdId, loanId)
	if err != nil {
		err := fmt.Errorf("could not delete loan: %w", err)
		log.Error(err)
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanLoan(scan func(dest ...any) error) (Loan, error) {
	var loan Loan
	var amount int64
	var lender, borrower string
	var settledDate *time.Time
	err := scan(&loan.Id, &loan.Uid, &amount, &lender, &borrower, &loan.Date, &loan.Concept, &loan.Settled, &settledDate)
	if err != nil {
		return Loan{}, fmt.Errorf("could not scan loan: %w", err)
	}
	loan.Amount = money.Money(amount)
	loan.From = household.Owner(lender)
	loan.To = household.Owner(borrower)
	loan.SettledDate = settledDate
	return loan, nil
}
