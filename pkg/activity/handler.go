package activity

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	Id         int    `json:"id"`
	Type       string `json:"type"`
	Message    string `json:"message"`
	OccurredAt string `json:"occurredAt"`
}

type Handler struct {
	log *Log
}

func NewHandler(activityLog *Log) *Handler {
	return &Handler{log: activityLog}
}

// ListActivity godoc
// @Summary List recent household activity, newest first
// @Tags Activity
// @Produce json
// @Success 200 {array} RecordDTO
// @Router /api/activity [get]
// @Security XHouseholdId
func (handler *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing activity feed")
	w.Header().Set("Content-Type", "application/json")

	records := handler.log.List()
	dtos := make([]RecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, RecordDTO{
			Id:         record.Id,
			Type:       record.Type,
			Message:    record.Message,
			OccurredAt: record.OccurredAt.Format(time.RFC3339),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
