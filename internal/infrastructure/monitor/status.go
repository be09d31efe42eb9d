package monitor

import "time"

// Status is a snapshot of the last round of dependency checks.
type Status struct {
	Checks    map[string]bool `json:"checks"`
	Healthy   bool            `json:"healthy"`
	LastCheck time.Time       `json:"last_check"`
}
