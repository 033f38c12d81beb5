package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/nidoapp/nido/internal/utils"
	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type GoalDTO struct {
	Id              int    `json:"id,omitempty"`
	Uid             string `json:"uid,omitempty"`
	Name            string `json:"name"`
	Target          string `json:"target"`
	Current         string `json:"current"`
	Color           string `json:"color"`
	Deadline        string `json:"deadline,omitempty"`
	ProgressPercent int    `json:"progressPercent"`
	Completed       bool   `json:"completed"`
	DaysRemaining   *int   `json:"daysRemaining,omitempty"`
}

type ContributionDTO struct {
	Amount string `json:"amount"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// ListGoals godoc
// @Summary List savings goals
// @Tags Goals
// @Produce json
// @Success 200 {array} GoalDTO
// @Router /api/goals [get]
// @Security XHouseholdId
func (handler *Handler) ListGoals(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing goals")
	w.Header().Set("Content-Type", "application/json")
	goals, err := handler.service.ListGoals(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]GoalDTO, 0, len(goals))
	for _, goal := range goals {
		dtos = append(dtos, handler.toDTO(goal))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateGoal godoc
// @Summary Create a savings goal
// @Tags Goals
// @Accept json
// @Produce json
// @Param goal body GoalDTO true "Goal"
// @Success 201 {object} GoalDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/goals [post]
// @Security XHouseholdId
func (handler *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating goal")
	w.Header().Set("Content-Type", "application/json")
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := handler.service.CreateGoal(r.Context(), goal)
	if err != nil {
		if errors.Is(err, ErrNonPositiveTarget) {
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

// UpdateGoal godoc
// @Summary Update a savings goal
// @Description Edits name, target, color and deadline; progress only changes through contributions
// @Tags Goals
// @Accept json
// @Produce json
// @Param uid path string true "Goal UID"
// @Param goal body GoalDTO true "Goal"
// @Success 200 {object} GoalDTO
// @Failure 404 {string} string "Goal not found"
// @Router /api/goals/{uid} [put]
// @Security XHouseholdId
func (handler *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating goal")
	w.Header().Set("Content-Type", "application/json")
	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	goal.Uid = mux.Vars(r)["uid"]
	updated, err := handler.service.UpdateGoal(r.Context(), goal)
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrNonPositiveTarget):
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

// DeleteGoal godoc
// @Summary Delete a savings goal
// @Tags Goals
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 404 {string} string "Goal not found"
// @Router /api/goals/{id} [delete]
// @Security XHouseholdId
func (handler *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting goal")
	goalId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid goal id", http.StatusBadRequest)
		return
	}

	if err := handler.service.DeleteGoal(r.Context(), goalId); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Contribute godoc
// @Summary Add money to a savings goal
// @Description Increases progress and records a matching savings entry in the ledger
// @Tags Goals
// @Accept json
// @Produce json
// @Param uid path string true "Goal UID"
// @Param contribution body ContributionDTO true "Contribution"
// @Success 200 {object} GoalDTO
// @Failure 400 {string} string "Non-positive contribution"
// @Failure 404 {string} string "Goal not found"
// @Router /api/goals/{uid}/contributions [post]
// @Security XHouseholdId
func (handler *Handler) Contribute(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording goal contribution")
	w.Header().Set("Content-Type", "application/json")
	var dto ContributionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	goal, err := handler.service.Contribute(r.Context(), mux.Vars(r)["uid"], money.ParseDecimal(dto.Amount))
	if err != nil {
		switch {
		case errors.Is(err, ErrNonPositiveContribution):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrGoalNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(handler.toDTO(goal)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *Handler) toDTO(goal Goal) GoalDTO {
	dto := GoalDTO{
		Id:              goal.Id,
		Uid:             goal.Uid,
		Name:            goal.Name,
		Target:          goal.Target.Format(),
		Current:         goal.Current.Format(),
		Color:           goal.Color,
		ProgressPercent: goal.ProgressPercent(),
		Completed:       goal.IsCompleted(),
	}
	if goal.Deadline != nil {
		dto.Deadline = goal.Deadline.Format(dateLayout)
	}
	if days, ok := goal.DaysRemaining(utils.Today(handler.clock)); ok {
		dto.DaysRemaining = &days
	}
	return dto
}

func fromDTO(dto GoalDTO) (Goal, error) {
	goal := Goal{
		Id:      dto.Id,
		Uid:     dto.Uid,
		Name:    dto.Name,
		Target:  money.ParseDecimal(dto.Target),
		Current: money.ParseDecimal(dto.Current),
		Color:   dto.Color,
	}
	if dto.Deadline != "" {
		deadline, err := time.Parse(dateLayout, dto.Deadline)
		if err != nil {
			return Goal{}, err
		}
		goal.Deadline = &deadline
	}
	return goal, nil
}
