package models

import (
	"time"

	"github.com/google/uuid"
)

// Order references the buyer and the ordered products.
type Order struct {
	ID         uuid.UUID   `db:"id" json:"id"`
	UserID     uuid.UUID   `db:"user_id" json:"userId"`
	ProductIDs []uuid.UUID `db:"-" json:"products"`
	CreatedAt  time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time   `db:"updated_at" json:"updatedAt"`
}
