package household

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type HouseholdDTO struct {
	Uid                      string `json:"uid"`
	Name                     string `json:"name"`
	Currency                 string `json:"currency"`
	PartnerAName             string `json:"partnerAName"`
	PartnerBName             string `json:"partnerBName"`
	IncludeJointInSettlement bool   `json:"includeJointInSettlement"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetCurrent godoc
// @Summary Get the current household
// @Description Get details of the household resolved from the X-Household-Id header
// @Tags Household
// @Produce json
// @Success 200 {object} HouseholdDTO
// @Failure 403 {string} string "Household not found"
// @Router /api/household/current [get]
// @Security XHouseholdId
func (handler *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting current household")
	w.Header().Set("Content-Type", "application/json")
	h, err := handler.service.GetCurrentHousehold(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoHousehold) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(h)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Create godoc
// @Summary Create a new household
// @Description Register a new household with partner names and currency
// @Tags Household
// @Accept json
// @Produce json
// @Param household body HouseholdDTO true "Household"
// @Success 201 {object} HouseholdDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/household [post]
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new household")
	w.Header().Set("Content-Type", "application/json")
	var dto HouseholdDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h, err := handler.service.CreateHousehold(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(h)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Update godoc
// @Summary Update the current household
// @Description Update name, currency, partner names or settlement settings
// @Tags Household
// @Accept json
// @Produce json
// @Param household body HouseholdDTO true "Household"
// @Success 200 {object} HouseholdDTO
// @Failure 400 {string} string "Bad Request"
// @Failure 403 {string} string "Household not found"
// @Router /api/household/current [put]
// @Security XHouseholdId
func (handler *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating current household")
	w.Header().Set("Content-Type", "application/json")
	var dto HouseholdDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h, err := handler.service.UpdateCurrentHousehold(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrNoHousehold) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(h)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(h Household) HouseholdDTO {
	return HouseholdDTO{
		Uid:                      h.Uid,
		Name:                     h.Name,
		Currency:                 h.Settings.Currency,
		PartnerAName:             h.Settings.PartnerAName,
		PartnerBName:             h.Settings.PartnerBName,
		IncludeJointInSettlement: h.Settings.IncludeJointInSettlement,
	}
}

func fromDTO(dto HouseholdDTO) Household {
	return Household{
		Uid:  dto.Uid,
		Name: dto.Name,
		Settings: Settings{
			Currency:                 dto.Currency,
			PartnerAName:             dto.PartnerAName,
			PartnerBName:             dto.PartnerBName,
			IncludeJointInSettlement: dto.IncludeJointInSettlement,
		},
	}
}
