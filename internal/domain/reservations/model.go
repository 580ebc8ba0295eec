package reservations

import (
	"cmp"
	"slices"
	"time"
)

// Resolution indica cómo se cerró la cola a la que pertenecía la entrada.
type Resolution string

const (
	ResolutionAdopted   Resolution = "ADOPTED"
	ResolutionDissolved Resolution = "DISSOLVED"
	ResolutionExpired   Resolution = "EXPIRED"
)

// Entry es una reserva de un adoptante sobre un animal.
// La cola vigente de un animal son sus entradas sin ResolvedAt; resolver la cola
// las cierra todas juntas (canceladas incluidas) sin borrarlas.
type Entry struct {
	ID        string
	AnimalID  string
	AdopterID string

	Rate      float64
	CreatedAt time.Time

	Canceled   bool
	CanceledAt *time.Time

	ResolvedAt *time.Time
	Resolution Resolution
}

func (e Entry) Open() bool   { return e.ResolvedAt == nil }
func (e Entry) Active() bool { return e.Open() && !e.Canceled }

// Compare ordena por prioridad: rate desc, created asc, id asc.
// Los ids son UUIDv7, así que el desempate sigue el orden de alta.
func Compare(a, b Entry) int {
	if c := cmp.Compare(b.Rate, a.Rate); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Queue son las entradas abiertas de un animal, leídas dentro del scope serializado.
type Queue struct {
	AnimalID string
	Entries  []Entry
}

// Active devuelve las entradas activas en orden de prioridad.
func (q Queue) Active() []Entry {
	out := make([]Entry, 0, len(q.Entries))
	for _, e := range q.Entries {
		if e.Active() {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, Compare)
	return out
}

func (q Queue) HasActive() bool {
	return slices.ContainsFunc(q.Entries, Entry.Active)
}

// AllCanceled es true también para una cola vacía.
func (q Queue) AllCanceled() bool {
	return !q.HasActive()
}

// First es la entrada más antigua de la cola, cancelada o no. Marca el inicio de la expiración.
func (q Queue) First() (Entry, bool) {
	if len(q.Entries) == 0 {
		return Entry{}, false
	}
	return slices.MinFunc(q.Entries, func(a, b Entry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}), true
}

// Head es la entrada activa de mayor prioridad.
func (q Queue) Head() (Entry, bool) {
	active := q.Active()
	if len(active) == 0 {
		return Entry{}, false
	}
	return active[0], true
}

// ExpiresAt devuelve cuándo vence la cola; ok=false si está vacía.
func (q Queue) ExpiresAt(d time.Duration) (time.Time, bool) {
	first, ok := q.First()
	if !ok {
		return time.Time{}, false
	}
	return first.CreatedAt.Add(d), true
}

// Expired: now >= first.CreatedAt + d. Una cola vacía nunca vence.
func (q Queue) Expired(now time.Time, d time.Duration) bool {
	at, ok := q.ExpiresAt(d)
	return ok && !now.Before(at)
}

// QueueSummary resume una cola abierta para los listados de staff.
type QueueSummary struct {
	AnimalID       string
	FirstCreatedAt time.Time
	ActiveEntries  int
}
