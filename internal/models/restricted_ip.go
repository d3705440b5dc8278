package models

import "time"

// RestrictedIP marks an address that may not use the API. Existence of the
// entry is the block; there is no separate enabled flag.
type RestrictedIP struct {
	IP           string    `json:"ip"`
	Reason       string    `json:"reason"`
	RestrictedBy int64     `json:"restrictedBy"`
	RestrictedAt time.Time `json:"restrictedAt"`
}
