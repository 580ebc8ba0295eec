package details

import "time"

type Quarantine struct {
	Reason string     `json:"reason"`
	Until  *time.Time `json:"until,omitempty"`
}
