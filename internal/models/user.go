package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account in the store.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Username     string    `db:"username" json:"username"`
	Slug         string    `db:"slug" json:"slug"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // Не отдаем хеш пароля
	Address      string    `db:"address" json:"address"`
	Phone        string    `db:"phone" json:"phone"`
	Image        string    `db:"image" json:"image"`
	IsAdmin      bool      `db:"is_admin" json:"isAdmin"`
	IsBanned     bool      `db:"is_banned" json:"isBanned"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// PendingUser is the full profile carried inside an activation token.
// It is the system of record for a registration until the token is
// consumed; no database row exists before that point. Admin and ban
// flags are deliberately absent: they are never taken from a token.
type PendingUser struct {
	Name         string `json:"name"`
	Username     string `json:"username"`
	Slug         string `json:"slug"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Image        string `json:"image"`
}

// UserUpdate carries optional profile fields for a partial update.
// Nil means "leave unchanged".
type UserUpdate struct {
	Name     *string
	Username *string
	Address  *string
	Phone    *string
	Image    *string
}
