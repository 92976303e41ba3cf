// Package models holds the persisted shapes shared by repositories and services.
package models

import "time"

// Principal is a registered identity. Secret is the encoded password hash
// and must never leave the server.
type Principal struct {
	ID        string
	Email     string
	Secret    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
