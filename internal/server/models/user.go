// Package models defines the records persisted in the document store and
// the document that holds them.
package models

import "time"

// User is an account record. Password holds an opaque hashed credential:
// the store never inspects or compares it, hashing lives in the service
// layer.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Email     string    `json:"email"`
	IsAdmin   Flag      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
