package chore

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/nidoapp/nido/internal/utils"
	log "github.com/sirupsen/logrus"
)

type ChoreDTO struct {
	Id              int     `json:"id,omitempty"`
	Uid             string  `json:"uid,omitempty"`
	Name            string  `json:"name"`
	Icon            string  `json:"icon"`
	FrequencyDays   int     `json:"frequencyDays"`
	LastCompletedAt string  `json:"lastCompletedAt,omitempty"`
	State           string  `json:"state"`
	Urgency         float64 `json:"urgency"`
}

type HistoryEntryDTO struct {
	Id          int    `json:"id"`
	CompletedAt string `json:"completedAt"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// ListChores godoc
// @Summary List chores, most urgent first
// @Tags Chores
// @Produce json
// @Success 200 {array} ChoreDTO
// @Router /api/chores [get]
// @Security XHouseholdId
func (handler *Handler) ListChores(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing chores")
	w.Header().Set("Content-Type", "application/json")
	chores, err := handler.service.ListChores(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ChoreDTO, 0, len(chores))
	for _, chore := range chores {
		dtos = append(dtos, handler.toDTO(chore))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateChore godoc
// @Summary Create a recurring chore
// @Tags Chores
// @Accept json
// @Produce json
// @Param chore body ChoreDTO true "Chore"
// @Success 201 {object} ChoreDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/chores [post]
// @Security XHouseholdId
func (handler *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating chore")
	w.Header().Set("Content-Type", "application/json")
	var dto ChoreDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := handler.service.CreateChore(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidFrequency) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(handler.toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// UpdateChore godoc
// @Summary Update a chore's name, icon or frequency
// @Tags Chores
// @Accept json
// @Produce json
// @Param uid path string true "Chore UID"
// @Param chore body ChoreDTO true "Chore"
// @Success 200 {object} ChoreDTO
// @Failure 404 {string} string "Chore not found"
// @Router /api/chores/{uid} [put]
// @Security XHouseholdId
func (handler *Handler) UpdateChore(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating chore")
	w.Header().Set("Content-Type", "application/json")
	var dto ChoreDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	chore := fromDTO(dto)
	chore.Uid = mux.Vars(r)["uid"]
	updated, err := handler.service.UpdateChore(r.Context(), chore)
	if err != nil {
		switch {
		case errors.Is(err, ErrChoreNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrInvalidFrequency):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(handler.toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteChore godoc
// @Summary Delete a chore
// @Tags Chores
// @Param id path int true "Chore ID"
// @Success 204
// @Failure 404 {string} string "Chore not found"
// @Router /api/chores/{id} [delete]
// @Security XHouseholdId
func (handler *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting chore")
	choreId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid chore id", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteChore(r.Context(), choreId); err != nil {
		if errors.Is(err, ErrChoreNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete godoc
// @Summary Mark a chore as done now
// @Tags Chores
// @Produce json
// @Param uid path string true "Chore UID"
// @Success 200 {object} ChoreDTO
// @Failure 404 {string} string "Chore not found"
// @Router /api/chores/{uid}/completions [post]
// @Security XHouseholdId
func (handler *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	log.Debug("Completing chore")
	w.Header().Set("Content-Type", "application/json")
	chore, err := handler.service.Complete(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		if errors.Is(err, ErrChoreNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(handler.toDTO(chore)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// History godoc
// @Summary List a chore's completion history, newest first
// @Tags Chores
// @Produce json
// @Param uid path string true "Chore UID"
// @Success 200 {array} HistoryEntryDTO
// @Failure 404 {string} string "Chore not found"
// @Router /api/chores/{uid}/completions [get]
// @Security XHouseholdId
func (handler *Handler) History(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing chore history")
	w.Header().Set("Content-Type", "application/json")
	history, err := handler.service.History(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		if errors.Is(err, ErrChoreNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HistoryEntryDTO, 0, len(history))
	for _, entry := range history {
		dtos = append(dtos, HistoryEntryDTO{Id: entry.Id, CompletedAt: entry.CompletedAt.Format(time.RFC3339)})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) toDTO(chore Chore) ChoreDTO {
	now := handler.clock.Now()
	dto := ChoreDTO{
		Id:            chore.Id,
		Uid:           chore.Uid,
		Name:          chore.Name,
		Icon:          chore.Icon,
		FrequencyDays: chore.FrequencyDays,
		State:         string(chore.State(now)),
		Urgency:       chore.Urgency(now),
	}
	if chore.LastCompletedAt != nil {
		dto.LastCompletedAt = chore.LastCompletedAt.Format(time.RFC3339)
	}
	return dto
}

func fromDTO(dto ChoreDTO) Chore {
	return Chore{
		Id:            dto.Id,
		Uid:           dto.Uid,
		Name:          dto.Name,
		Icon:          dto.Icon,
		FrequencyDays: dto.FrequencyDays,
	}
}
