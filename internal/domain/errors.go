package domain

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartItemNotFound = errors.New("cart item not found")

	// ErrEmailTaken and ErrDocumentTaken signal a uniqueness conflict,
	// detected either by a pre-check or by the store's unique index.
	ErrEmailTaken    = errors.New("email is already registered")
	ErrDocumentTaken = errors.New("document is already registered")

	// ErrCustomerHasOrders blocks deletion of customers with order history.
	ErrCustomerHasOrders = errors.New("customer has associated orders")

	ErrCurrentPasswordMismatch = errors.New("current password is not correct")

	ErrCartEmpty         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInactive   = errors.New("product is inactive")

	ErrInvalidOrderStatus = errors.New("invalid order status")
)

// IsConflict reports whether err is a business-invariant violation,
// as opposed to a missing record or a store failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrDocumentTaken) ||
		errors.Is(err, ErrCustomerHasOrders) ||
		errors.Is(err, ErrCartEmpty) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrProductInactive)
}

// IsNotFound reports whether err refers to an unknown identity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCustomerNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCartItemNotFound)
}
