package mortgage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/nidoapp/nido/pkg/money"
	log "github.com/sirupsen/logrus"
)

type ConfigDTO struct {
	Price             string  `json:"price"`
	PropertyType      string  `json:"propertyType"`
	BuyerUnder35      bool    `json:"buyerUnder35"`
	FinancingPercent  int     `json:"financingPercent"`
	AnnualRatePercent float64 `json:"annualRatePercent"`
	TermYears         int     `json:"termYears"`
	NetMonthlyIncome  string  `json:"netMonthlyIncome"`
	FurnishingBudget  string  `json:"furnishingBudget"`
	EmergencyBuffer   string  `json:"emergencyBuffer"`
	MonthlySavings    string  `json:"monthlySavings"`
}

type ProjectionDTO struct {
	VAT                string `json:"vat"`
	StampDuty          string `json:"stampDuty"`
	TransferTax        string `json:"transferTax"`
	TotalTaxes         string `json:"totalTaxes"`
	TotalPurchaseCosts string `json:"totalPurchaseCosts"`

	LoanAmount     string `json:"loanAmount"`
	DownPayment    string `json:"downPayment"`
	MonthlyPayment string `json:"monthlyPayment"`
	TotalInterest  string `json:"totalInterest"`

	DebtToIncomeRatio float64 `json:"debtToIncomeRatio"`
	Affordability     string  `json:"affordability"`

	TotalNeeded string `json:"totalNeeded"`
	FundingGap  string `json:"fundingGap"`

	MonthsToGoal int    `json:"monthsToGoal,omitempty"`
	TargetDate   string `json:"targetDate,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

// GetConfig godoc
// @Summary Get the purchase scenario
// @Tags Mortgage
// @Produce json
// @Success 200 {object} ConfigDTO
// @Failure 404 {string} string "No scenario saved yet"
// @Router /api/mortgage/config [get]
// @Security XHouseholdId
func (handler *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting mortgage config")
	w.Header().Set("Content-Type", "application/json")
	cfg, err := handler.service.GetConfig(r.Context())
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(configToDTO(cfg)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// SaveConfig godoc
// @Summary Save the purchase scenario
// @Tags Mortgage
// @Accept json
// @Produce json
// @Param config body ConfigDTO true "Scenario"
// @Success 200 {object} ConfigDTO
// @Failure 400 {string} string "Bad Request"
// @Router /api/mortgage/config [put]
// @Security XHouseholdId
func (handler *Handler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving mortgage config")
	w.Header().Set("Content-Type", "application/json")
	var dto ConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := dtoToConfig(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := handler.service.SaveConfig(r.Context(), cfg); err != nil {
		if errors.Is(err, ErrInvalidFinancing) || errors.Is(err, ErrInvalidTerm) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(configToDTO(cfg)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// GetProjection godoc
// @Summary Project affordability for the saved scenario
// @Description Taxes, loan terms, monthly payment, debt-to-income classification and the funding gap against current funds
// @Tags Mortgage
// @Produce json
// @Success 200 {object} ProjectionDTO
// @Failure 404 {string} string "No scenario saved yet"
// @Router /api/mortgage/projection [get]
// @Security XHouseholdId
func (handler *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	log.Debug("Projecting mortgage scenario")
	w.Header().Set("Content-Type", "application/json")
	p, err := handler.service.ProjectCurrent(r.Context())
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := ProjectionDTO{
		VAT:                p.VAT.Format(),
		StampDuty:          p.StampDuty.Format(),
		TransferTax:        p.TransferTax.Format(),
		TotalTaxes:         p.TotalTaxes.Format(),
		TotalPurchaseCosts: p.TotalPurchaseCosts.Format(),
		LoanAmount:         p.LoanAmount.Format(),
		DownPayment:        p.DownPayment.Format(),
		MonthlyPayment:     p.MonthlyPayment.Format(),
		TotalInterest:      p.TotalInterest.Format(),
		DebtToIncomeRatio:  p.DebtToIncomeRatio,
		Affordability:      string(p.Affordability),
		TotalNeeded:        p.TotalNeeded.Format(),
		FundingGap:         p.FundingGap.Format(),
		MonthsToGoal:       p.MonthsToGoal,
	}
	if p.TargetDate != nil {
		dto.TargetDate = p.TargetDate.Format("2006-01-02")
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func configToDTO(cfg Config) ConfigDTO {
	return ConfigDTO{
		Price:             cfg.Price.Format(),
		PropertyType:      string(cfg.PropertyType),
		BuyerUnder35:      cfg.BuyerUnder35,
		FinancingPercent:  cfg.FinancingPercent,
		AnnualRatePercent: cfg.AnnualRatePercent,
		TermYears:         cfg.TermYears,
		NetMonthlyIncome:  cfg.NetMonthlyIncome.Format(),
		FurnishingBudget:  cfg.FurnishingBudget.Format(),
		EmergencyBuffer:   cfg.EmergencyBuffer.Format(),
		MonthlySavings:    cfg.MonthlySavings.Format(),
	}
}

func dtoToConfig(dto ConfigDTO) (Config, error) {
	propertyType := PropertyType(dto.PropertyType)
	if propertyType != NewBuild && propertyType != Resale {
		return Config{}, fmt.Errorf("unknown property type %q", dto.PropertyType)
	}
	return Config{
		Price:             money.ParseDecimal(dto.Price),
		PropertyType:      propertyType,
		BuyerUnder35:      dto.BuyerUnder35,
		FinancingPercent:  dto.FinancingPercent,
		AnnualRatePercent: dto.AnnualRatePercent,
		TermYears:         dto.TermYears,
		NetMonthlyIncome:  money.ParseDecimal(dto.NetMonthlyIncome),
		FurnishingBudget:  money.ParseDecimal(dto.FurnishingBudget),
		EmergencyBuffer:   money.ParseDecimal(dto.EmergencyBuffer),
		MonthlySavings:    money.ParseDecimal(dto.MonthlySavings),
	}, nil
}
