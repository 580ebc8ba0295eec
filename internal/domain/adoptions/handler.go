package adoptions

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/adoptions", listAdoptionsHandler(svc))
	r.Get("/adoptions/{adoptionID}", getAdoptionHandler(svc))
	r.Post("/animals/{animalID}/returns", registerReturnHandler(svc))
}

type adoptionResponse struct {
	ID        string    `json:"id"`
	AnimalID  string    `json:"animal_id"`
	AdopterID string    `json:"adopter_id"`
	Fee       string    `json:"fee"`
	CreatedAt time.Time `json:"created_at"`
}

type returnResponse struct {
	AdoptionID string    `json:"adoption_id"`
	AnimalID   string    `json:"animal_id"`
	Reason     string    `json:"reason"`
	ReturnedAt time.Time `json:"returned_at"`
}

type returnedAdoptionResponse struct {
	adoptionResponse
	Return returnResponse `json:"return"`
}

type listingResponse struct {
	Active   []adoptionResponse         `json:"active"`
	Returned []returnedAdoptionResponse `json:"returned"`
}

type adoptionDetailResponse struct {
	adoptionResponse
	Return *returnResponse `json:"return,omitempty"`
}

type registerReturnRequest struct {
	Reason string `json:"reason"`
}

// listAdoptionsHandler godoc
// @Summary Listar adopciones
// @Description Separa las adopciones vigentes de las devueltas (con datos de la devolución).
// @Tags adoptions
// @Produce json
// @Success 200 {object} listingResponse
// @Failure 500 {string} string "internal error"
// @Router /adoptions [get]
func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.List(r.Context())
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := listingResponse{
			Active:   make([]adoptionResponse, 0, len(l.Active)),
			Returned: make([]returnedAdoptionResponse, 0, len(l.Returned)),
		}
		for _, a := range l.Active {
			out.Active = append(out.Active, toAdoptionResponse(a))
		}
		for _, ra := range l.Returned {
			out.Returned = append(out.Returned, returnedAdoptionResponse{
				adoptionResponse: toAdoptionResponse(ra.Adoption),
				Return:           toReturnResponse(ra.Return),
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAdoptionHandler godoc
// @Summary Obtener adopción
// @Tags adoptions
// @Produce json
// @Param adoptionID path string true "ID de la adopción"
// @Success 200 {object} adoptionDetailResponse
// @Failure 404 {string} string "adoption not found"
// @Router /adoptions/{adoptionID} [get]
func getAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		ret, ok, err := svc.GetReturn(r.Context(), a.ID)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := adoptionDetailResponse{adoptionResponse: toAdoptionResponse(a)}
		if ok {
			rr := toReturnResponse(ret)
			out.Return = &rr
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// registerReturnHandler godoc
// @Summary Registrar devolución
// @Description Vincula la devolución a la última adopción del animal y lo pasa a RETURNED.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body registerReturnRequest true "Motivo"
// @Success 201 {object} returnResponse
// @Failure 400 {string} string "reason required"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "sin adopción / ya devuelta / transición inválida"
// @Router /animals/{animalID}/returns [post]
func registerReturnHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReturnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ret, err := svc.RegisterReturn(r.Context(), chi.URLParam(r, "animalID"), req.Reason)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReturnResponse(ret))
	}
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:        a.ID,
		AnimalID:  a.AnimalID,
		AdopterID: a.AdopterID,
		Fee:       a.Fee.StringFixed(2),
		CreatedAt: a.CreatedAt,
	}
}

func toReturnResponse(r Return) returnResponse {
	return returnResponse{
		AdoptionID: r.AdoptionID,
		AnimalID:   r.AnimalID,
		Reason:     r.Reason,
		ReturnedAt: r.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
