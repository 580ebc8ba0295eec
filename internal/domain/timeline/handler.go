package timeline

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-shelter/internal/domain/events/details"
	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/animals/{animalID}/timeline", timelineHandler(svc))
}

type entryResponse struct {
	ID         string              `json:"id"`
	Type       EntryType           `json:"type"`
	OccurredAt time.Time           `json:"occurred_at"`
	Notes      string              `json:"notes,omitempty"`
	AdopterID  string              `json:"adopter_id,omitempty"`
	Fee        string              `json:"fee,omitempty"`
	AdoptionID string              `json:"adoption_id,omitempty"`
	Reason     string              `json:"reason,omitempty"`
	Vaccine    *details.Vaccine    `json:"vaccine,omitempty"`
	Training   *details.Training   `json:"training,omitempty"`
	Quarantine *details.Quarantine `json:"quarantine,omitempty"`
}

// timelineHandler godoc
// @Summary Timeline del animal
// @Description Eventos de cuidado, adopciones y devoluciones en orden cronológico.
// @Tags timeline
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {array} entryResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/timeline [get]
func timelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Build(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			resp := entryResponse{
				ID:         e.ID,
				Type:       e.Type,
				OccurredAt: e.OccurredAt,
				Notes:      e.Notes,
				AdopterID:  e.AdopterID,
				AdoptionID: e.AdoptionID,
				Reason:     e.Reason,
				Vaccine:    e.Vaccine,
				Training:   e.Training,
				Quarantine: e.Quarantine,
			}
			if e.Fee != nil {
				resp.Fee = e.Fee.StringFixed(2)
			}
			out = append(out, resp)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
