package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"pet-shelter/internal/platform/metrics"
	"pet-shelter/internal/router"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newServer(t *testing.T) (*httptest.Server, *clock) {
	t.Helper()
	clk := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	h, err := router.NewRouter(router.Options{Metrics: metrics.New(), Now: clk.Now})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, clk
}

func TestHTTP_EndToEnd_ReservationToReturn(t *testing.T) {
	ts, clk := newServer(t)

	// 1) Alta del animal y dos adoptantes
	animalID := createID(t, ts.URL, "/animals", map[string]any{
		"species":     "DOG",
		"breed":       "Vira-lata",
		"name":        "thor",
		"gender":      "MALE",
		"age_months":  40,
		"size":        "MEDIUM",
		"temperament": []string{"brincalhão"},
		"needs_walk":  true,
	})
	anaID := createID(t, ts.URL, "/adopters", map[string]any{
		"name": "Ana", "age": 34, "housing_type": "HOUSE", "usable_area": 120,
		"has_pet_experience": true,
	})
	biaID := createID(t, ts.URL, "/adopters", map[string]any{
		"name": "Bia", "age": 22, "housing_type": "APARTMENT", "usable_area": 30,
		"has_children_at_home": true, "has_other_animals": true,
	})

	// 2) Vacuna antes de la adopción
	createID(t, ts.URL, "/animals/"+animalID+"/events", map[string]any{
		"type":        "VACCINE",
		"occurred_at": clk.Now().Format(time.RFC3339),
		"vaccine":     map[string]any{"name": "V10", "veterinarian": "Dra. Paz"},
	})

	// 3) Preview de compatibilidad
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/compatibility?adopter_id="+anaID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 preview, got %d body=%s", st, string(body))
		}
		var b struct {
			Total float64 `json:"total"`
		}
		_ = json.Unmarshal(body, &b)
		if b.Total <= 0 || b.Total > 100 {
			t.Fatalf("unexpected total %v", b.Total)
		}
	}

	// 4) Reservas; la primera pasa el animal a RESERVED
	clk.Advance(time.Minute)
	createID(t, ts.URL, "/animals/"+animalID+"/reservations", map[string]any{"adopter_id": anaID})
	clk.Advance(time.Minute)
	createID(t, ts.URL, "/animals/"+animalID+"/reservations", map[string]any{"adopter_id": biaID})
	expectStatus(t, ts.URL, "GET", "/animals/"+animalID, nil, http.StatusOK, `"status":"RESERVED"`)

	// 5) Par repetido => 409
	expectStatus(t, ts.URL, "POST", "/animals/"+animalID+"/reservations", map[string]any{"adopter_id": anaID}, http.StatusConflict, "")

	// 6) La cola sigue abierta
	var queue struct {
		Entries []struct {
			ID string `json:"id"`
		} `json:"entries"`
		Expired bool `json:"expired"`
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/reservations", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 queue, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &queue)
		if len(queue.Entries) != 2 || queue.Expired {
			t.Fatalf("unexpected queue: %s", string(body))
		}
	}
	expectStatus(t, ts.URL, "POST", "/reservations/"+queue.Entries[0].ID+"/confirm", nil, http.StatusConflict, "")

	// 7) Vence la ventana
	clk.Advance(72 * time.Hour)
	expectStatus(t, ts.URL, "GET", "/animals/"+animalID+"/reservations/expired", nil, http.StatusOK, `"expired":true`)
	expectStatus(t, ts.URL, "GET", "/reservations/expired-queues", nil, http.StatusOK, animalID)

	var outcome struct {
		Expired bool `json:"expired"`
		Winner  *struct {
			ID string `json:"id"`
		} `json:"winner"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+animalID+"/reservations/finalize", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 finalize, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &outcome)
		if !outcome.Expired || outcome.Winner == nil || outcome.Winner.ID != queue.Entries[0].ID {
			t.Fatalf("unexpected finalize outcome: %s", string(body))
		}
	}

	// 8) Confirmación del ganador => adopción
	var adoption struct {
		ID  string `json:"id"`
		Fee string `json:"fee"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/reservations/"+outcome.Winner.ID+"/confirm", nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 confirm, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &adoption)
		if adoption.ID == "" || adoption.Fee != "150.00" {
			t.Fatalf("unexpected adoption: %s", string(body))
		}
	}
	expectStatus(t, ts.URL, "GET", "/animals/"+animalID, nil, http.StatusOK, `"status":"ADOPTED"`)
	expectStatus(t, ts.URL, "GET", "/adoptions/"+adoption.ID, nil, http.StatusOK, adoption.ID)

	// 9) Contrato y archivo
	expectStatus(t, ts.URL, "GET", "/adoptions/"+adoption.ID+"/contract", nil, http.StatusOK, "CONTRATO DE ADOPCIÓN")
	expectStatus(t, ts.URL, "GET", "/adoptions/"+adoption.ID+"/contract/archive", nil, http.StatusNotFound, "")
	expectStatus(t, ts.URL, "POST", "/adoptions/"+adoption.ID+"/contract/archive", nil, http.StatusCreated, "contracts/"+adoption.ID+".txt")
	expectStatus(t, ts.URL, "POST", "/adoptions/"+adoption.ID+"/contract/archive", nil, http.StatusConflict, "")
	expectStatus(t, ts.URL, "GET", "/adoptions/"+adoption.ID+"/contract/archive", nil, http.StatusOK, "Importe abonado: $ 150.00")

	// 10) Devolución
	clk.Advance(24 * time.Hour)
	expectStatus(t, ts.URL, "POST", "/animals/"+animalID+"/returns", map[string]any{"reason": "mudança"}, http.StatusCreated, adoption.ID)
	expectStatus(t, ts.URL, "POST", "/animals/"+animalID+"/returns", map[string]any{"reason": "de novo"}, http.StatusConflict, "")
	expectStatus(t, ts.URL, "GET", "/animals/"+animalID, nil, http.StatusOK, `"status":"RETURNED"`)

	// 11) Timeline: vacuna, adopción, devolución
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+animalID+"/timeline", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 timeline, got %d body=%s", st, string(body))
		}
		var items []struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(body, &items)
		got := make([]string, 0, len(items))
		for _, it := range items {
			got = append(got, it.Type)
		}
		if strings.Join(got, ",") != "VACCINE,ADOPTION,RETURN" {
			t.Fatalf("unexpected timeline order: %v", got)
		}
	}

	// 12) Métricas
	expectStatus(t, ts.URL, "GET", "/metrics", nil, http.StatusOK, "shelter_reservation_operations_total")
}

func TestHTTP_CancelAllReleasesAnimal(t *testing.T) {
	ts, _ := newServer(t)

	animalID := createID(t, ts.URL, "/animals", map[string]any{
		"species": "CAT", "breed": "Siamês", "name": "mia", "gender": "FEMALE",
		"age_months": 6, "size": "SMALL", "hypoallergenic": true,
	})
	adopterID := createID(t, ts.URL, "/adopters", map[string]any{
		"name": "Caio", "age": 40, "housing_type": "APARTMENT", "usable_area": 55,
	})

	reservationID := createID(t, ts.URL, "/animals/"+animalID+"/reservations", map[string]any{"adopter_id": adopterID})
	expectStatus(t, ts.URL, "POST", "/reservations/"+reservationID+"/cancel", nil, http.StatusOK, `"is_canceled":true`)
	expectStatus(t, ts.URL, "POST", "/reservations/"+reservationID+"/cancel", nil, http.StatusOK, `"resolution":"DISSOLVED"`)
	expectStatus(t, ts.URL, "GET", "/animals/"+animalID, nil, http.StatusOK, `"status":"AVAILABLE"`)
}

func TestHTTP_ErrorMapping(t *testing.T) {
	ts, _ := newServer(t)

	expectStatus(t, ts.URL, "GET", "/health", nil, http.StatusOK, "ok")
	expectStatus(t, ts.URL, "GET", "/animals/missing", nil, http.StatusNotFound, "")
	expectStatus(t, ts.URL, "GET", "/reservations/missing", nil, http.StatusNotFound, "")
	expectStatus(t, ts.URL, "POST", "/animals", map[string]any{"species": "BIRD"}, http.StatusBadRequest, "")

	// menor de la edad mínima => 422
	expectStatus(t, ts.URL, "POST", "/adopters", map[string]any{
		"name": "Leo", "age": 15, "housing_type": "HOUSE", "usable_area": 80,
	}, http.StatusUnprocessableEntity, "")

	// UNADOPTABLE no admite reservas
	animalID := createID(t, ts.URL, "/animals", map[string]any{
		"species": "DOG", "breed": "SRD", "name": "rex", "gender": "MALE",
		"age_months": 100, "size": "LARGE", "status": "UNADOPTABLE",
	})
	adopterID := createID(t, ts.URL, "/adopters", map[string]any{
		"name": "Ana", "age": 30, "housing_type": "HOUSE", "usable_area": 200,
	})
	expectStatus(t, ts.URL, "POST", "/animals/"+animalID+"/reservations", map[string]any{"adopter_id": adopterID}, http.StatusConflict, "")
}

func TestHTTP_QueueExpiredHours(t *testing.T) {
	ts, clk := newServer(t)

	animalID := createID(t, ts.URL, "/animals", map[string]any{
		"species": "DOG", "breed": "SRD", "name": "bento", "gender": "MALE",
		"age_months": 30, "size": "SMALL",
	})
	adopterID := createID(t, ts.URL, "/adopters", map[string]any{
		"name": "Ana", "age": 30, "housing_type": "HOUSE", "usable_area": 90,
	})
	createID(t, ts.URL, "/animals/"+animalID+"/reservations", map[string]any{"adopter_id": adopterID})
	clk.Advance(2 * time.Hour)

	path := "/animals/" + animalID + "/reservations/expired"
	expectStatus(t, ts.URL, "GET", path, nil, http.StatusOK, `"duration_hours":72,"expired":false`)
	expectStatus(t, ts.URL, "GET", path+"?hours=2", nil, http.StatusOK, `"duration_hours":2,"expired":true`)

	// sólo horas enteras y positivas, respondidas como validación
	for _, bad := range []string{"1.5", "0", "-3", "abc"} {
		expectStatus(t, ts.URL, "GET", path+"?hours="+bad, nil, http.StatusBadRequest, "hours must be a positive whole number")
	}

	// el documento swagger publica el parámetro
	expectStatus(t, ts.URL, "GET", "/swagger/doc.json", nil, http.StatusOK, `"name": "hours"`)
}

func createID(t *testing.T, baseURL, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func expectStatus(t *testing.T, baseURL, method, path string, payload any, want int, contains string) {
	t.Helper()

	st, body := doReq(t, baseURL, method, path, payload)
	if st != want {
		t.Fatalf("%s %s: expected %d, got %d body=%s", method, path, want, st, string(body))
	}
	if contains != "" && !strings.Contains(string(body), contains) {
		t.Fatalf("%s %s: body does not contain %q: %s", method, path, contains, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	b, _ := io.ReadAll(res.Body)
	return res.StatusCode, b
}
