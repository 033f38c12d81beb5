package peerloan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type LoanDTO struct {
	Id          int    `json:"id"`
	Uid         string `json:"uid"`
	Amount      string `json:"amount"`
	From        string `json:"from"`
	To          string `json:"to"`
	Date        string `json:"date"`
	Concept     string `json:"concept,omitempty"`
	Settled     bool   `json:"settled"`
	SettledDate string `json:"settledDate,omitempty"`
}

type NetBalanceDTO struct {
	Debtor    string `json:"debtor,omitempty"`
	Amount    string `json:"amount"`
	Statement string `json:"statement"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// ListLoans godoc
// @Summary List peer loans
// @Description All loans of the current household, settled and open
// @Tags PeerLoan
// @Produce json
// @Success 200 {array} LoanDTO
// @Router /api/loan [get]
// @Security XHouseholdId
func (handler *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing peer loans")
	w.Header().Set("Content-Type", "application/json")
	loans, err := handler.service.ListLoans(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]LoanDTO, 0, len(loans))
	for _, l := range loans {
		dtos = append(dtos, loanToDTO(l))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateLoan godoc
// @Summary Record a peer loan
// @Description Register money lent from one partner to the other
// @Tags PeerLoan
// @Accept json
// @Produce json
// @Param loan body LoanDTO true "Loan"
// @Success 201 {object} LoanDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/loan [post]
// @Security XHouseholdId
func (handler *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating peer loan")
	w.Header().Set("Content-Type", "application/json")
	var dto LoanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan := Loan{
		Amount:  money.ParseDecimal(dto.Amount),
		From:    household.Owner(dto.From),
		To:      household.Owner(dto.To),
		Concept: dto.Concept,
	}
	if dto.Date != "" {
		date, err := time.Parse(dateLayout, dto.Date)
		if err != nil {
			http.Error(w, "invalid loan date", http.StatusBadRequest)
			return
		}
		loan.Date = date
	}

	created, err := handler.service.CreateLoan(r.Context(), loan)
	if err != nil {
		if errors.Is(err, ErrSelfLoan) || errors.Is(err, ErrNonPositiveAmount) || errors.Is(err, ErrNotAPartner) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(loanToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetNetBalance godoc
// @Summary Net loan balance
// @Description Collapse all open loans into a single signed debt with a statement
// @Tags PeerLoan
// @Produce json
// @Success 200 {object} NetBalanceDTO
// @Router /api/loan/net [get]
// @Security XHouseholdId
func (handler *Handler) GetNetBalance(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing net loan balance")
	w.Header().Set("Content-Type", "application/json")
	result, err := handler.service.NetBalance(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := NetBalanceDTO{
		Amount:    result.Amount.Format(),
		Statement: result.Statement,
	}
	if result.Debtor != nil {
		dto.Debtor = string(*result.Debtor)
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// MarkSettled godoc
// @Summary Settle a loan
// @Description Mark a single loan as settled; settling twice is a no-op
// @Tags PeerLoan
// @Produce json
// @Param loanId path int true "Loan ID"
// @Success 200 {object} LoanDTO
// @Failure 404 {string} string "Loan Not Found"
// @Router /api/loan/{loanId}/settled [put]
// @Security XHouseholdId
func (handler *Handler) MarkSettled(w http.ResponseWriter, r *http.Request) {
	log.Debug("Marking loan settled")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	loanId, err := strconv.Atoi(vars["loanId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loan, err := handler.service.MarkSettled(r.Context(), loanId)
	if err != nil {
		if errors.Is(err, ErrLoanNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(loanToDTO(loan)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteLoan godoc
// @Summary Delete a loan
// @Tags PeerLoan
// @Param loanId path int true "Loan ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Loan Not Found"
// @Router /api/loan/{loanId} [delete]
// @Security XHouseholdId
func (handler *Handler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting loan")
	vars := mux.Vars(r)
	loanId, err := strconv.Atoi(vars["loanId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := handler.service.DeleteLoan(r.Context(), loanId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "loan not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func loanToDTO(l Loan) LoanDTO {
	dto := LoanDTO{
		Id:      l.Id,
		Uid:     l.Uid,
		Amount:  l.Amount.Format(),
		From:    string(l.From),
		To:      string(l.To),
		Date:    l.Date.Format(dateLayout),
		Concept: l.Concept,
		Settled: l.Settled,
	}
	if l.SettledDate != nil {
		dto.SettledDate = l.SettledDate.Format(dateLayout)
	}
	return dto
}
