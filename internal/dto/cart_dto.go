package dto

import (
	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/service"
	"github.com/samber/lo"
)

type CartItem struct {
	Product  Product `json:"product"`
	Quantity int32   `json:"quantity"`
	Subtotal Money   `json:"subtotal"`
}

type Cart struct {
	CustomerID uuid.UUID  `json:"customer_id"`
	Items      []CartItem `json:"items"`
	Total      Money      `json:"total"`
}

func CartFromDetail(detail service.CartDetail) Cart {
	return Cart{
		CustomerID: detail.CustomerID,
		Items: lo.Map(detail.Items, func(item service.CartItemDetail, _ int) CartItem {
			return CartItem{
				Product:  ProductFromDomain(item.Product),
				Quantity: item.Quantity,
				Subtotal: MoneyFromDomain(item.Subtotal),
			}
		}),
		Total: MoneyFromDomain(detail.Total),
	}
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
}

func (r AddCartItemRequest) Validate() error {
	var errs ValidationErrors

	if r.ProductID == uuid.Nil {
		errs = append(errs, FieldError{Field: "product_id", Message: "is required"})
	}
	if r.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "must not be negative"})
	}

	return errsOrNil(errs)
}

type UpdateCartItemRequest struct {
	Quantity int32 `json:"quantity"`
}
