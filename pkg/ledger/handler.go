package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/category"
	"github.com/nidoapp/nido/pkg/household"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type EntryDTO struct {
	Id         int    `json:"id"`
	Uid        string `json:"uid"`
	Kind       string `json:"kind"`
	Amount     string `json:"amount"`
	Owner      string `json:"owner"`
	Instrument string `json:"instrument"`
	Category   string `json:"category"`
	Date       string `json:"date"`
	Recurring  bool   `json:"recurring,omitempty"`
	Concept    string `json:"concept,omitempty"`
}

type OwnerBalanceDTO struct {
	Cash    string `json:"cash"`
	Digital string `json:"digital"`
	Total   string `json:"total"`
}

type BalancesDTO struct {
	PerOwner   map[string]OwnerBalanceDTO `json:"perOwner"`
	GrandTotal string                     `json:"grandTotal"`
}

type SnapshotDTO struct {
	EffectiveDate string                       `json:"effectiveDate"`
	Amounts       map[string]map[string]string `json:"amounts"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service, clock}
}

// ListEntries godoc
// @Summary List ledger entries
// @Description List entries for the current household, optionally filtered by owner and date range
// @Tags Ledger
// @Produce json
// @Param owner query string false "Owner filter"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} EntryDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/ledger/entry [get]
// @Security XHouseholdId
func (handler *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing ledger entries")
	w.Header().Set("Content-Type", "application/json")

	filter := EntryFilter{}
	if ownerParam := r.URL.Query().Get("owner"); ownerParam != "" {
		owner := household.Owner(ownerParam)
		if !owner.IsValid() {
			http.Error(w, ErrInvalidOwner.Error(), http.StatusBadRequest)
			return
		}
		filter.Owner = &owner
	}
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		from, err := time.Parse(dateLayout, fromParam)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		filter.From = from
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		to, err := time.Parse(dateLayout, toParam)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		filter.To = to
	}

	entries, err := handler.service.ListEntries(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, EntryToDTO(e))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// RecordEntry godoc
// @Summary Record a ledger entry
// @Description Append a new income or expense entry
// @Tags Ledger
// @Accept json
// @Produce json
// @Param entry body EntryDTO true "Entry"
// @Success 201 {object} EntryDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/ledger/entry [post]
// @Security XHouseholdId
func (handler *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording ledger entry")
	w.Header().Set("Content-Type", "application/json")
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := DTOToEntry(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.RecordEntry(r.Context(), entry)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(EntryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateEntry godoc
// @Summary Update a ledger entry
// @Description Replace an existing entry by ID
// @Tags Ledger
// @Accept json
// @Produce json
// @Param entryId path int true "Entry ID"
// @Param entry body EntryDTO true "Entry"
// @Success 200 {object} EntryDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 404 {string} string "Entry Not Found"
// @Router /api/ledger/entry/{entryId} [put]
// @Security XHouseholdId
func (handler *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating ledger entry")
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	entryId, err := strconv.Atoi(vars["entryId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := DTOToEntry(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry.Id = entryId

	updated, err := handler.service.UpdateEntry(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(EntryToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteEntry godoc
// @Summary Delete a ledger entry
// @Tags Ledger
// @Param entryId path int true "Entry ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Entry Not Found"
// @Router /api/ledger/entry/{entryId} [delete]
// @Security XHouseholdId
func (handler *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting ledger entry")
	vars := mux.Vars(r)
	entryId, err := strconv.Atoi(vars["entryId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := handler.service.DeleteEntry(r.Context(), entryId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "entry not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetBalances godoc
// @Summary Get household balances
// @Description Per-owner and per-instrument running balances as of a date
// @Tags Ledger
// @Produce json
// @Param asOf query string false "As-of date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} BalancesDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/ledger/balances [get]
// @Security XHouseholdId
func (handler *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	log.Debug("Computing balances")
	w.Header().Set("Content-Type", "application/json")

	asOf := handler.clock.Now()
	if asOfParam := r.URL.Query().Get("asOf"); asOfParam != "" {
		parsed, err := time.Parse(dateLayout, asOfParam)
		if err != nil {
			http.Error(w, "invalid asOf date", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}

	result, err := handler.service.Balances(r.Context(), asOf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := BalancesDTO{
		PerOwner:   make(map[string]OwnerBalanceDTO, len(result.PerOwner)),
		GrandTotal: result.GrandTotal.Format(),
	}
	for owner, balance := range result.PerOwner {
		dto.PerOwner[string(owner)] = OwnerBalanceDTO{
			Cash:    balance.Cash.Format(),
			Digital: balance.Digital.Format(),
			Total:   balance.Total.Format(),
		}
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// PutSnapshot godoc
// @Summary Set the initial balance snapshot
// @Description Replace the household's starting balances; aggregation restarts from the effective date
// @Tags Ledger
// @Accept json
// @Param snapshot body SnapshotDTO true "Snapshot"
// @Success 204 {string} string "No Content"
// @Failure 400 {string} string "Bad Request"
// @Router /api/ledger/snapshot [put]
// @Security XHouseholdId
func (handler *Handler) PutSnapshot(w http.ResponseWriter, r *http.Request) {
	log.Debug("Storing balance snapshot")
	var dto SnapshotDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	effectiveDate, err := time.Parse(dateLayout, dto.EffectiveDate)
	if err != nil {
		http.Error(w, "invalid effective date", http.StatusBadRequest)
		return
	}

	snapshot := Snapshot{
		EffectiveDate: effectiveDate,
		Amounts:       map[household.Owner]map[Instrument]money.Money{},
	}
	for owner, byInstrument := range dto.Amounts {
		o := household.Owner(owner)
		if !o.IsValid() {
			http.Error(w, ErrInvalidOwner.Error(), http.StatusBadRequest)
			return
		}
		snapshot.Amounts[o] = map[Instrument]money.Money{}
		for instrument, amount := range byInstrument {
			i := Instrument(instrument)
			if !i.IsValid() {
				http.Error(w, ErrInvalidInstrument.Error(), http.StatusBadRequest)
				return
			}
			snapshot.Amounts[o][i] = money.ParseDecimal(amount)
		}
	}

	if err := handler.service.PutSnapshot(r.Context(), snapshot); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func EntryToDTO(e Entry) EntryDTO {
	return EntryDTO{
		Id:         e.Id,
		Uid:        e.Uid,
		Kind:       string(e.Kind),
		Amount:     e.Amount.Format(),
		Owner:      string(e.Owner),
		Instrument: string(e.Instrument),
		Category:   string(e.Category),
		Date:       e.Date.Format(dateLayout),
		Recurring:  e.Recurring,
		Concept:    e.Concept,
	}
}

func DTOToEntry(dto EntryDTO) (Entry, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return Entry{}, err
	}
	kind := Kind(dto.Kind)
	if !kind.IsValid() {
		return Entry{}, ErrInvalidKind
	}
	owner := household.Owner(dto.Owner)
	if !owner.IsValid() {
		return Entry{}, ErrInvalidOwner
	}
	instrument := Instrument(dto.Instrument)
	if !instrument.IsValid() {
		return Entry{}, ErrInvalidInstrument
	}
	return Entry{
		Uid:        dto.Uid,
		Kind:       kind,
		Amount:     money.ParseDecimal(dto.Amount),
		Owner:      owner,
		Instrument: instrument,
		Category:   category.Normalize(dto.Category),
		Date:       date,
		Recurring:  dto.Recurring,
		Concept:    dto.Concept,
	}, nil
}
