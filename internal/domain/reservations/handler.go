package reservations

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// rutas planas: un Route en /animals/{animalID} taparía las del módulo animals
	r.Post("/animals/{animalID}/reservations", createReservationHandler(svc))
	r.Get("/animals/{animalID}/reservations", listQueueHandler(svc))
	r.Get("/animals/{animalID}/reservations/expired", queueExpiredHandler(svc))
	r.Post("/animals/{animalID}/reservations/finalize", finalizeQueueHandler(svc))
	r.Get("/animals/{animalID}/compatibility", previewHandler(svc))
	r.Route("/reservations", func(rr chi.Router) {
		rr.Get("/expired-queues", expiredQueuesHandler(svc))
		rr.Get("/{reservationID}", getReservationHandler(svc))
		rr.Post("/{reservationID}/cancel", cancelReservationHandler(svc))
		rr.Post("/{reservationID}/confirm", confirmReservationHandler(svc))
	})
}

type createReservationRequest struct {
	AdopterID string `json:"adopter_id"`
}

// reservationResponse es una entrada de la cola.
type reservationResponse struct {
	ID         string     `json:"id"`
	AnimalID   string     `json:"animal_id"`
	AdopterID  string     `json:"adopter_id"`
	Rate       float64    `json:"compatibility_rate"`
	CreatedAt  time.Time  `json:"created_at"`
	Canceled   bool       `json:"is_canceled"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Resolution Resolution `json:"resolution,omitempty"`
}

type queueResponse struct {
	AnimalID  string                `json:"animal_id"`
	Entries   []reservationResponse `json:"entries"`
	ExpiresAt *time.Time            `json:"expires_at,omitempty"`
	Expired   bool                  `json:"expired"`
}

type expiredResponse struct {
	AnimalID      string `json:"animal_id"`
	DurationHours int    `json:"duration_hours"`
	Expired       bool   `json:"expired"`
}

type outcomeResponse struct {
	Expired   bool                 `json:"expired"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
	Released  bool                 `json:"released"`
	Winner    *reservationResponse `json:"winner,omitempty"`
}

type queueSummaryResponse struct {
	AnimalID       string    `json:"animal_id"`
	FirstCreatedAt time.Time `json:"first_created_at"`
	ActiveEntries  int       `json:"active_entries"`
}

type adoptionResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	AdopterID string    `json:"adopter_id"`
	Fee       string    `json:"fee"`
	CreatedAt time.Time `json:"created_at"`
}

// createReservationHandler godoc
// @Summary Reservar animal
// @Description Encola al adoptante con su compatibilidad. La primera reserva pasa el animal a RESERVED.
// @Tags reservations
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body createReservationRequest true "Adoptante"
// @Success 201 {object} reservationResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "animal o adoptante no encontrado"
// @Failure 409 {string} string "reserva duplicada / cola vencida / estado"
// @Router /animals/{animalID}/reservations [post]
func createReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), chi.URLParam(r, "animalID"), req.AdopterID)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReservationResponse(e))
	}
}

// listQueueHandler godoc
// @Summary Cola de reservas del animal
// @Description Entradas activas ordenadas por compatibilidad desc, antigüedad asc.
// @Tags reservations
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} queueResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/reservations [get]
func listQueueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := svc.ListQueue(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := queueResponse{
			AnimalID:  q.AnimalID,
			Entries:   make([]reservationResponse, 0, len(q.Entries)),
			ExpiresAt: q.ExpiresAt,
			Expired:   q.Expired,
		}
		for _, e := range q.Entries {
			out.Entries = append(out.Entries, toReservationResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// queueExpiredHandler godoc
// @Summary ¿Venció la cola?
// @Tags reservations
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param hours query int false "Duración en horas enteras (por defecto la configurada)"
// @Success 200 {object} expiredResponse
// @Failure 400 {string} string "hours inválido"
// @Router /animals/{animalID}/reservations/expired [get]
func queueExpiredHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := svc.QueueDuration()
		if v := strings.TrimSpace(r.URL.Query().Get("hours")); v != "" {
			h, err := strconv.Atoi(v)
			if err != nil || h <= 0 {
				apperr.WriteHTTP(w, apperr.Validation("hours must be a positive whole number"))
				return
			}
			d = time.Duration(h) * time.Hour
		}

		animalID := chi.URLParam(r, "animalID")
		expired, err := svc.IsQueueExpired(r.Context(), animalID, d)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, expiredResponse{AnimalID: animalID, DurationHours: int(d.Hours()), Expired: expired})
	}
}

// finalizeQueueHandler godoc
// @Summary Finalizar cola
// @Description Sin vencer no hace nada. Vencida y vacía libera el animal. Vencida con entradas devuelve el ganador.
// @Tags reservations
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} outcomeResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/reservations/finalize [post]
func finalizeQueueHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		o, err := svc.Finalize(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := outcomeResponse{Expired: o.Expired, ExpiresAt: o.ExpiresAt, Released: o.Released}
		if o.Winner != nil {
			winner := toReservationResponse(*o.Winner)
			out.Winner = &winner
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// previewHandler godoc
// @Summary Compatibilidad animal/adoptante
// @Description Calcula el desglose sin crear reserva.
// @Tags reservations
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param adopter_id query string true "ID del adoptante"
// @Success 200 {object} compatibility.Breakdown
// @Failure 404 {string} string "animal o adoptante no encontrado"
// @Router /animals/{animalID}/compatibility [get]
func previewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adopterID := strings.TrimSpace(r.URL.Query().Get("adopter_id"))
		if adopterID == "" {
			http.Error(w, "adopter_id required", http.StatusBadRequest)
			return
		}

		b, err := svc.Preview(r.Context(), chi.URLParam(r, "animalID"), adopterID)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// expiredQueuesHandler godoc
// @Summary Colas vencidas
// @Description Colas abiertas cuya ventana ya pasó; esperan finalize o confirm.
// @Tags reservations
// @Produce json
// @Success 200 {array} queueSummaryResponse
// @Router /reservations/expired-queues [get]
func expiredQueuesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ExpiredQueues(r.Context())
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := make([]queueSummaryResponse, 0, len(items))
		for _, q := range items {
			out = append(out, queueSummaryResponse{AnimalID: q.AnimalID, FirstCreatedAt: q.FirstCreatedAt, ActiveEntries: q.ActiveEntries})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getReservationHandler godoc
// @Summary Obtener reserva
// @Tags reservations
// @Produce json
// @Param reservationID path string true "ID de la reserva"
// @Success 200 {object} reservationResponse
// @Failure 404 {string} string "reservation not found"
// @Router /reservations/{reservationID} [get]
func getReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.GetByID(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(e))
	}
}

// cancelReservationHandler godoc
// @Summary Cancelar reserva
// @Description Idempotente. Si no quedan reservas activas el animal vuelve a AVAILABLE.
// @Tags reservations
// @Produce json
// @Param reservationID path string true "ID de la reserva"
// @Success 200 {object} reservationResponse
// @Failure 404 {string} string "reservation not found"
// @Failure 409 {string} string "cola ya resuelta"
// @Router /reservations/{reservationID}/cancel [post]
func cancelReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := svc.Cancel(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(e))
	}
}

// confirmReservationHandler godoc
// @Summary Confirmar adopción
// @Description Sólo la primera reserva de una cola vencida. Registra la adopción y resuelve la cola.
// @Tags reservations
// @Produce json
// @Param reservationID path string true "ID de la reserva"
// @Success 201 {object} adoptionResponse
// @Failure 404 {string} string "reservation not found"
// @Failure 409 {string} string "cola abierta / no es la primera / cancelada"
// @Router /reservations/{reservationID}/confirm [post]
func confirmReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.Confirm(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

func toReservationResponse(e Entry) reservationResponse {
	return reservationResponse{
		ID:         e.ID,
		AnimalID:   e.AnimalID,
		AdopterID:  e.AdopterID,
		Rate:       e.Rate,
		CreatedAt:  e.CreatedAt,
		Canceled:   e.Canceled,
		CanceledAt: e.CanceledAt,
		ResolvedAt: e.ResolvedAt,
		Resolution: e.Resolution,
	}
}

func toAdoptionResponse(a adoptions.Adoption) adoptionResponse {
	return adoptionResponse{
		ID:        a.ID,
		AnimalID:  a.AnimalID,
		AdopterID: a.AdopterID,
		Fee:       a.Fee.StringFixed(2),
		CreatedAt: a.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
