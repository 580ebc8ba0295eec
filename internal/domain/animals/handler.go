package animals

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))
		ar.Patch("/{animalID}", updateAnimalHandler(svc))
		ar.Post("/{animalID}/status", changeStatusHandler(svc))
	})
}

// createAnimalRequest es el cuerpo para dar de alta un animal.
type createAnimalRequest struct {
	Species        Species  `json:"species" enums:"CAT,DOG"`
	Breed          string   `json:"breed"`
	Name           string   `json:"name"`
	Gender         Gender   `json:"gender" enums:"MALE,FEMALE"`
	AgeMonths      int      `json:"age_months"`
	Size           Size     `json:"size" enums:"SMALL,MEDIUM,LARGE"`
	Temperament    []string `json:"temperament"`
	Status         Status   `json:"status" enums:"AVAILABLE,QUARANTINE,UNADOPTABLE"`
	Hypoallergenic bool     `json:"hypoallergenic"`
	NeedsWalk      bool     `json:"needs_walk"`
}

type updateAnimalRequest struct {
	Name           *string   `json:"name"`
	Breed          *string   `json:"breed"`
	Gender         *Gender   `json:"gender"`
	AgeMonths      *int      `json:"age_months"`
	Size           *Size     `json:"size"`
	Temperament    *[]string `json:"temperament"`
	Hypoallergenic *bool     `json:"hypoallergenic"`
	NeedsWalk      *bool     `json:"needs_walk"`
}

type changeStatusRequest struct {
	Status Status `json:"status" enums:"AVAILABLE,QUARANTINE,UNADOPTABLE"`
}

// animalResponse representa un animal devuelto por la API.
type animalResponse struct {
	ID             string    `json:"id"`
	Species        Species   `json:"species"`
	Breed          string    `json:"breed"`
	Name           string    `json:"name"`
	Gender         Gender    `json:"gender"`
	AgeMonths      int       `json:"age_months"`
	AgeGroup       AgeGroup  `json:"age_group"`
	Size           Size      `json:"size"`
	Temperament    []string  `json:"temperament"`
	Status         Status    `json:"status"`
	Hypoallergenic *bool     `json:"hypoallergenic,omitempty"`
	NeedsWalk      *bool     `json:"needs_walk,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Da de alta un animal en el refugio. El estado inicial por defecto es AVAILABLE.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / validación"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), Input{
			Species:        Species(strings.ToUpper(strings.TrimSpace(string(req.Species)))),
			Breed:          req.Breed,
			Name:           req.Name,
			Gender:         req.Gender,
			AgeMonths:      req.AgeMonths,
			Size:           req.Size,
			Temperament:    req.Temperament,
			Status:         req.Status,
			Hypoallergenic: req.Hypoallergenic,
			NeedsWalk:      req.NeedsWalk,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Tags animals
// @Produce json
// @Param status query string false "CSV de estados (ej: AVAILABLE,RESERVED)"
// @Param species query string false "CAT o DOG"
// @Param reservable query bool false "Sólo animales que aceptan reservas"
// @Success 200 {array} animalResponse
// @Failure 400 {string} string "filtro inválido"
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var (
			items []Animal
			err   error
		)
		if q.Get("reservable") == "true" {
			items, err = svc.ListReservable(r.Context())
		} else {
			f := Filter{Species: Species(strings.ToUpper(strings.TrimSpace(q.Get("species"))))}
			if v := strings.TrimSpace(q.Get("status")); v != "" {
				for _, p := range strings.Split(v, ",") {
					if st := Status(strings.ToUpper(strings.TrimSpace(p))); st != "" {
						f.Statuses = append(f.Statuses, st)
					}
				}
			}
			items, err = svc.List(r.Context(), f)
		}
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar perfil del animal
// @Description PATCH parcial: sólo se modifican los campos enviados. El estado no se toca aquí.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / validación"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [patch]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			Name:           req.Name,
			Breed:          req.Breed,
			Gender:         req.Gender,
			AgeMonths:      req.AgeMonths,
			Size:           req.Size,
			Temperament:    req.Temperament,
			Hypoallergenic: req.Hypoallergenic,
			NeedsWalk:      req.NeedsWalk,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// changeStatusHandler godoc
// @Summary Cambiar estado del animal
// @Description Cambio manual validado por la máquina de estados. RESERVED, ADOPTED y RETURNED los gestionan reservas y adopciones.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body changeStatusRequest true "Nuevo estado"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "estado desconocido"
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "transición inválida"
// @Router /animals/{animalID}/status [post]
func changeStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req changeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.ChangeStatus(r.Context(), chi.URLParam(r, "animalID"), Status(strings.ToUpper(strings.TrimSpace(string(req.Status)))))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	out := animalResponse{
		ID:          a.ID,
		Species:     a.Species,
		Breed:       a.Breed,
		Name:        a.Name,
		Gender:      a.Gender,
		AgeMonths:   a.AgeMonths,
		AgeGroup:    a.AgeGroup(),
		Size:        a.Size,
		Temperament: a.Temperament,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	if out.Temperament == nil {
		out.Temperament = []string{}
	}
	if a.Cat != nil {
		v := a.Cat.Hypoallergenic
		out.Hypoallergenic = &v
	}
	if a.Dog != nil {
		v := a.Dog.NeedsWalk
		out.NeedsWalk = &v
	}
	return out
}

// writeJSON está duplicado a propósito en cada módulo; extraerlo cuando haga falta.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
