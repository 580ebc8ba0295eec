package details

type Training struct {
	DurationMinutes int    `json:"duration_minutes"`
	Kind            string `json:"kind"` // obediencia, socialización...
	Trainer         string `json:"trainer"`
}
