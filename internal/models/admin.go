package models

import "time"

// AdminAccount is the single administrative identity. The password hash
// never serialises to JSON.
type AdminAccount struct {
	ID           string    `db:"id" json:"-"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
