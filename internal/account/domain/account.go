package domain

import "time"

// Account is the record persisted as a JSON message in the account channel.
// The password is stored verbatim and the token is issued once at
// registration and never rotated; both are part of the observed contract.
type Account struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
