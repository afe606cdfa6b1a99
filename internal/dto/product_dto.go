package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Money travels as a decimal string plus an ISO currency code.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func MoneyFromDomain(m domain.Money) Money {
	return Money{
		Amount:   m.Amount.String(),
		Currency: m.Currency.String(),
	}
}

type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       Money     `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"image_url"`
	Stock       int32     `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ProductFromDomain(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       MoneyFromDomain(p.Price),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}

func ProductsFromDomain(products []domain.Product) []Product {
	return lo.Map(products, func(p domain.Product, _ int) Product {
		return ProductFromDomain(p)
	})
}

type CreateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Stock       int32  `json:"stock"`
}

func (r CreateProductRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "name", r.Name)
	errs = checkMaxLen(errs, "name", r.Name, 100)
	errs = checkRequired(errs, "price", r.Price)
	errs = validatePrice(errs, r.Price)
	errs = checkMaxLen(errs, "category", r.Category, 50)
	if r.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "must not be negative"})
	}

	return errsOrNil(errs)
}

// PriceMoney parses the price into domain Money, falling back to
// defaultCurrency when the request carries no currency code. Call Validate
// first; a malformed price still returns an error here.
func (r CreateProductRequest) PriceMoney(defaultCurrency string) (domain.Money, error) {
	return parseMoney(r.Price, r.Currency, defaultCurrency)
}

// UpdateProductRequest overwrites every mutable field wholesale, including
// the active flag.
type UpdateProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	Stock       int32  `json:"stock"`
	Active      bool   `json:"active"`
}

func (r UpdateProductRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "name", r.Name)
	errs = checkMaxLen(errs, "name", r.Name, 100)
	errs = checkRequired(errs, "price", r.Price)
	errs = validatePrice(errs, r.Price)
	errs = checkMaxLen(errs, "category", r.Category, 50)
	if r.Stock < 0 {
		errs = append(errs, FieldError{Field: "stock", Message: "must not be negative"})
	}

	return errsOrNil(errs)
}

func (r UpdateProductRequest) ToDomain(productID uuid.UUID, defaultCurrency string) (domain.Product, error) {
	price, err := parseMoney(r.Price, r.Currency, defaultCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:          productID,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
		Active:      r.Active,
	}, nil
}

type StockRequest struct {
	Quantity int32 `json:"quantity"`
}

func (r StockRequest) Validate() error {
	var errs ValidationErrors

	if r.Quantity <= 0 {
		errs = append(errs, FieldError{Field: "quantity", Message: "must be greater than zero"})
	}

	return errsOrNil(errs)
}

func validatePrice(errs ValidationErrors, price string) ValidationErrors {
	if price == "" {
		return errs
	}

	amount, err := decimal.NewFromString(price)
	if err != nil {
		return append(errs, FieldError{Field: "price", Message: "is not a valid decimal"})
	}
	if amount.IsNegative() {
		return append(errs, FieldError{Field: "price", Message: "must not be negative"})
	}

	return errs
}

func parseMoney(price, currencyCode, defaultCurrency string) (domain.Money, error) {
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return domain.Money{}, ValidationErrors{{Field: "price", Message: "is not a valid decimal"}}
	}

	code := currencyCode
	if code == "" {
		code = defaultCurrency
	}

	money, err := domain.NewMoney(amount, code)
	if err != nil {
		return domain.Money{}, ValidationErrors{{Field: "currency", Message: "is not a valid ISO currency code"}}
	}

	return money, nil
}
