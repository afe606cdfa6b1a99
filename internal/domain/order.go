package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	Status          OrderStatus
	Total           Money
	ShippingAddress string
	Lines           []OrderLine

	OrderDate time.Time
	CreatedAt time.Time
}

// OrderLine captures quantity and unit price at the time of ordering.
// UnitPrice is a snapshot, never a live reference to the product price.
type OrderLine struct {
	ProductID uuid.UUID
	Quantity  int32
	UnitPrice Money

	CreatedAt time.Time
}

// LinesTotal sums quantity times unit price over all lines.
// The order total must always equal this sum.
func (o Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.UnitPrice.Amount.Mul(decimal.NewFromInt32(line.Quantity)))
	}
	return total
}
