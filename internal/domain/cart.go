package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	CustomerID uuid.UUID
	Items      []CartItem
}

type CartItem struct {
	ProductID uuid.UUID
	Quantity  int32

	CreatedAt time.Time
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
