package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Activate     bool      `db:"activate"`
	UniqueCode   string    `db:"unique_code"`
	CreatedAt    time.Time `db:"created_at"`
}

// Public returns a copy without credential material, safe to keep in ctx.
func (u *User) Public() *User {
	c := *u
	c.PasswordHash = ""
	c.UniqueCode = ""
	return &c
}
