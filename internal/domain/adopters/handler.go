package adopters

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/adopters", func(ar chi.Router) {
		ar.Post("/", createAdopterHandler(svc))
		ar.Get("/", listAdoptersHandler(svc))
		ar.Get("/{adopterID}", getAdopterHandler(svc))
		ar.Patch("/{adopterID}", updateAdopterHandler(svc))
	})
}

type createAdopterRequest struct {
	Name              string      `json:"name"`
	Age               int         `json:"age"`
	HousingType       HousingType `json:"housing_type" enums:"HOUSE,APARTMENT"`
	UsableArea        float64     `json:"usable_area"`
	HasPetExperience  bool        `json:"has_pet_experience"`
	HasChildrenAtHome bool        `json:"has_children_at_home"`
	HasOtherAnimals   bool        `json:"has_other_animals"`
}

type updateAdopterRequest struct {
	Name              *string      `json:"name"`
	Age               *int         `json:"age"`
	HousingType       *HousingType `json:"housing_type"`
	UsableArea        *float64     `json:"usable_area"`
	HasPetExperience  *bool        `json:"has_pet_experience"`
	HasChildrenAtHome *bool        `json:"has_children_at_home"`
	HasOtherAnimals   *bool        `json:"has_other_animals"`
}

type adopterResponse struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Age               int         `json:"age"`
	AgeGroup          AgeGroup    `json:"age_group"`
	HousingType       HousingType `json:"housing_type"`
	UsableArea        float64     `json:"usable_area"`
	HasPetExperience  bool        `json:"has_pet_experience"`
	HasChildrenAtHome bool        `json:"has_children_at_home"`
	HasOtherAnimals   bool        `json:"has_other_animals"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// createAdopterHandler godoc
// @Summary Registrar adoptante
// @Description Valida edad (0-128 y mínimo de la política), vivienda y área útil.
// @Tags adopters
// @Accept json
// @Produce json
// @Param payload body createAdopterRequest true "Datos del adoptante"
// @Success 201 {object} adopterResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 422 {string} string "no cumple la política de edad mínima"
// @Router /adopters [post]
func createAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAdopterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), Input{
			Name:              req.Name,
			Age:               req.Age,
			Housing:           req.HousingType,
			UsableArea:        req.UsableArea,
			HasPetExperience:  req.HasPetExperience,
			HasChildrenAtHome: req.HasChildrenAtHome,
			HasOtherAnimals:   req.HasOtherAnimals,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAdopterResponse(a))
	}
}

// listAdoptersHandler godoc
// @Summary Listar adoptantes
// @Tags adopters
// @Produce json
// @Success 200 {array} adopterResponse
// @Router /adopters [get]
func listAdoptersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		out := make([]adopterResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdopterResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAdopterHandler godoc
// @Summary Obtener adoptante
// @Tags adopters
// @Produce json
// @Param adopterID path string true "ID del adoptante"
// @Success 200 {object} adopterResponse
// @Failure 404 {string} string "adopter not found"
// @Router /adopters/{adopterID} [get]
func getAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "adopterID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdopterResponse(a))
	}
}

// updateAdopterHandler godoc
// @Summary Actualizar adoptante
// @Tags adopters
// @Accept json
// @Produce json
// @Param adopterID path string true "ID del adoptante"
// @Param payload body updateAdopterRequest true "Campos a modificar"
// @Success 200 {object} adopterResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "adopter not found"
// @Failure 422 {string} string "no cumple la política de edad mínima"
// @Router /adopters/{adopterID} [patch]
func updateAdopterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAdopterRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "adopterID"), UpdateInput{
			Name:              req.Name,
			Age:               req.Age,
			Housing:           req.HousingType,
			UsableArea:        req.UsableArea,
			HasPetExperience:  req.HasPetExperience,
			HasChildrenAtHome: req.HasChildrenAtHome,
			HasOtherAnimals:   req.HasOtherAnimals,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdopterResponse(a))
	}
}

func toAdopterResponse(a Adopter) adopterResponse {
	return adopterResponse{
		ID:                a.ID,
		Name:              a.Name,
		Age:               a.Age,
		AgeGroup:          a.AgeGroup(),
		HousingType:       a.Housing,
		UsableArea:        a.UsableArea,
		HasPetExperience:  a.HasPetExperience,
		HasChildrenAtHome: a.HasChildrenAtHome,
		HasOtherAnimals:   a.HasOtherAnimals,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
