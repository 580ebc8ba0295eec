package details

type Vaccine struct {
	Name         string `json:"name"`
	Veterinarian string `json:"veterinarian"`
	Dose         string `json:"dose,omitempty"` // "1/3", "refuerzo", etc.
}
