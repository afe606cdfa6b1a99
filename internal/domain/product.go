package domain

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       Money
	Category    string
	ImageURL    string
	Stock       int32
	Active      bool

	CreatedAt time.Time
}
