package contracts

import (
	"encoding/json"
	"net/http"
	"time"

	"pet-shelter/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/adoptions/{adoptionID}/contract", func(cr chi.Router) {
		cr.Get("/", renderContractHandler(svc))
		cr.Post("/archive", archiveContractHandler(svc))
		cr.Get("/archive", getArchivedContractHandler(svc))
	})
}

type archiveResponse struct {
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	StoredAt    time.Time `json:"stored_at"`
}

// renderContractHandler godoc
// @Summary Contrato de adopción
// @Description Texto plano generado con los datos actuales de la adopción, el animal y el adoptante.
// @Tags contracts
// @Produce plain
// @Param adoptionID path string true "ID de la adopción"
// @Success 200 {string} string "contrato"
// @Failure 404 {string} string "adoption not found"
// @Router /adoptions/{adoptionID}/contract [get]
func renderContractHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.Render(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
	}
}

// archiveContractHandler godoc
// @Summary Archivar contrato
// @Description Guarda el contrato en el blob store. Sólo una vez por adopción.
// @Tags contracts
// @Produce json
// @Param adoptionID path string true "ID de la adopción"
// @Success 201 {object} archiveResponse
// @Failure 404 {string} string "adoption not found"
// @Failure 409 {string} string "ya archivado"
// @Router /adoptions/{adoptionID}/contract/archive [post]
func archiveContractHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := svc.Archive(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(archiveResponse{
			Key:         obj.Key,
			ContentType: obj.ContentType,
			Size:        obj.Size,
			StoredAt:    obj.StoredAt,
		})
	}
}

// getArchivedContractHandler godoc
// @Summary Contrato archivado
// @Tags contracts
// @Produce plain
// @Param adoptionID path string true "ID de la adopción"
// @Success 200 {string} string "contrato"
// @Failure 404 {string} string "no archivado"
// @Router /adoptions/{adoptionID}/contract/archive [get]
func getArchivedContractHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		obj, err := svc.Archived(r.Context(), chi.URLParam(r, "adoptionID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		w.Header().Set("Content-Type", obj.ContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(obj.Body)
	}
}
