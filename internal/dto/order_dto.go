package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/samber/lo"
)

type OrderLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	UnitPrice Money     `json:"unit_price"`
}

type Order struct {
	ID              uuid.UUID   `json:"id"`
	CustomerID      uuid.UUID   `json:"customer_id"`
	Status          string      `json:"status"`
	Total           Money       `json:"total"`
	ShippingAddress string      `json:"shipping_address"`
	Lines           []OrderLine `json:"lines"`
	OrderDate       time.Time   `json:"order_date"`
}

func OrderFromDomain(o domain.Order) Order {
	return Order{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		Status:          string(o.Status),
		Total:           MoneyFromDomain(o.Total),
		ShippingAddress: o.ShippingAddress,
		Lines: lo.Map(o.Lines, func(line domain.OrderLine, _ int) OrderLine {
			return OrderLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: MoneyFromDomain(line.UnitPrice),
			}
		}),
		OrderDate: o.OrderDate,
	}
}

func OrdersFromDomain(orders []domain.Order) []Order {
	return lo.Map(orders, func(o domain.Order, _ int) Order {
		return OrderFromDomain(o)
	})
}

type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
}

func (r CheckoutRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "shipping_address", r.ShippingAddress)
	errs = checkMaxLen(errs, "shipping_address", r.ShippingAddress, 200)

	return errsOrNil(errs)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (r UpdateOrderStatusRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "status", r.Status)

	return errsOrNil(errs)
}
