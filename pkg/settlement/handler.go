package settlement

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

type PendingDTO struct {
	PaidByA   string `json:"paidByA"`
	PaidByB   string `json:"paidByB"`
	Pool      string `json:"pool"`
	Half      string `json:"half"`
	Debtor    string `json:"debtor,omitempty"`
	Creditor  string `json:"creditor,omitempty"`
	Amount    string `json:"amount"`
	AtPeace   bool   `json:"atPeace"`
	Token     string `json:"token"`
	Statement string `json:"statement"`
}

type ConfirmDTO struct {
	Amount string `json:"amount"`
	Token  string `json:"token"`
}

type ReceiptDTO struct {
	Debtor   string `json:"debtor"`
	Creditor string `json:"creditor"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetPending godoc
// @Summary Compute the pending settlement
// @Description Pool shared-category spending and return who owes whom, with a confirmation token
// @Tags Settlement
// @Produce json
// @Success 200 {object} PendingDTO
// @Failure 403 {string} string "Household not found"
// @Router /api/settlement [get]
// @Security XHouseholdId
func (handler *Handler) GetPending(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing pending settlement")
	w.Header().Set("Content-Type", "application/json")
	pending, err := handler.service.ComputePending(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := PendingDTO{
		PaidByA:   pending.PaidByA.Format(),
		PaidByB:   pending.PaidByB.Format(),
		Pool:      pending.Pool.Format(),
		Half:      pending.Half.Format(),
		Amount:    pending.Amount.Format(),
		AtPeace:   pending.AtPeace,
		Token:     pending.Token,
		Statement: pending.Statement,
	}
	if !pending.AtPeace {
		dto.Debtor = string(pending.Debtor)
		dto.Creditor = string(pending.Creditor)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Confirm godoc
// @Summary Confirm a computed settlement
// @Description Record the settlement as a debtor expense plus creditor income; requires the computed amount and token
// @Tags Settlement
// @Accept json
// @Produce json
// @Param confirmation body ConfirmDTO true "Confirmation"
// @Success 201 {object} ReceiptDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 409 {string} string "Stale amount or token already used"
// @Router /api/settlement/confirm [post]
// @Security XHouseholdId
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	log.Debug("Confirming settlement")
	w.Header().Set("Content-Type", "application/json")
	var dto ConfirmDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Token == "" {
		http.Error(w, "missing confirmation token", http.StatusBadRequest)
		return
	}

	receipt, err := handler.service.Confirm(r.Context(), money.ParseDecimal(dto.Amount), dto.Token)
	if err != nil {
		switch {
		case errors.Is(err, ErrNothingToSettle):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrStaleSettlement), errors.Is(err, ErrDuplicateToken):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ReceiptDTO{
		Debtor:   string(receipt.Debtor),
		Creditor: string(receipt.Creditor),
		Amount:   receipt.Amount.Format(),
		Date:     receipt.Date.Format("2006-01-02"),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
