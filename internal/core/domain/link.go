package domain

import "time"

// Link maps a short code to its target URL plus click accounting.
type Link struct {
	Code        string     `json:"code"`
	TargetURL   string     `json:"targetUrl"`
	Clicks      int64      `json:"clicks"`
	LastClicked *time.Time `json:"lastClicked"` // nil until the first redirect
	CreatedAt   time.Time  `json:"createdAt"`
}
