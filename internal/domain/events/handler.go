package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-shelter/internal/domain/events/details"
	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals/{animalID}/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsHandler(svc))
	})
}

// createEventRequest es el cuerpo para registrar un evento de cuidado.
type createEventRequest struct {
	Type       EventType           `json:"type" enums:"VACCINE,TRAINING,QUARANTINE"`
	OccurredAt string              `json:"occurred_at"` // RFC3339
	Notes      string              `json:"notes"`
	Vaccine    *details.Vaccine    `json:"vaccine,omitempty"`
	Training   *details.Training   `json:"training,omitempty"`
	Quarantine *details.Quarantine `json:"quarantine,omitempty"`
}

// eventResponse representa un evento de cuidado devuelto por la API.
type eventResponse struct {
	ID         string              `json:"id"`
	AnimalID   string              `json:"animal_id"`
	Type       EventType           `json:"type"`
	OccurredAt time.Time           `json:"occurred_at"`
	RecordedAt time.Time           `json:"recorded_at"`
	Notes      string              `json:"notes"`
	Vaccine    *details.Vaccine    `json:"vaccine,omitempty"`
	Training   *details.Training   `json:"training,omitempty"`
	Quarantine *details.Quarantine `json:"quarantine,omitempty"`
}

// createEventHandler godoc
// @Summary Registrar evento de cuidado
// @Description Registra vacuna, adiestramiento (sólo perros) o cuarentena. El detalle enviado debe coincidir con el tipo.
// @Tags events
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body createEventRequest true "Evento; occurred_at en RFC3339"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / occurred_at inválido / validación"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "evento duplicado"
// @Router /animals/{animalID}/events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			http.Error(w, "occurred_at must be RFC3339", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), chi.URLParam(r, "animalID"), CreateInput{
			Type:       EventType(strings.ToUpper(strings.TrimSpace(string(req.Type)))),
			OccurredAt: t,
			Notes:      req.Notes,
			Vaccine:    req.Vaccine,
			Training:   req.Training,
			Quarantine: req.Quarantine,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// listEventsHandler godoc
// @Summary Listar eventos de cuidado
// @Tags events
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param limit query int false "Máximo de eventos (1-200). Por defecto 50"
// @Param types query string false "CSV de tipos (ej: VACCINE,TRAINING)"
// @Param from query string false "occurred_at mínimo (RFC3339)"
// @Param to query string false "occurred_at máximo (RFC3339)"
// @Success 200 {array} eventResponse
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), chi.URLParam(r, "animalID"), filter)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	filter := ListFilter{Limit: limit}

	// types=VACCINE,TRAINING
	if v := strings.TrimSpace(r.URL.Query().Get("types")); v != "" {
		for _, p := range strings.Split(v, ",") {
			t := EventType(strings.ToUpper(strings.TrimSpace(p)))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown event type " + string(t))
			}
			filter.Types = append(filter.Types, t)
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	return filter, nil
}

func toEventResponse(e CareEvent) eventResponse {
	return eventResponse{
		ID:         e.ID,
		AnimalID:   e.AnimalID,
		Type:       e.Type,
		OccurredAt: e.OccurredAt,
		RecordedAt: e.RecordedAt,
		Notes:      e.Notes,
		Vaccine:    e.Vaccine,
		Training:   e.Training,
		Quarantine: e.Quarantine,
	}
}

// writeJSON está duplicado a propósito en cada módulo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
