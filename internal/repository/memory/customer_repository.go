package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
)

type customerRepository struct {
	store *Store
}

func (r *customerRepository) GetByID(_ context.Context, customerID uuid.UUID) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customer, ok := r.store.customers[customerID]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepository) GetByEmail(_ context.Context, email string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if strings.EqualFold(customer.Email, email) {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

func (r *customerRepository) GetByDocument(_ context.Context, document string) (domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, customer := range r.store.customers {
		if customer.Document == document {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

func (r *customerRepository) List(_ context.Context) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedCustomers(r.store.customers, func(domain.Customer) bool { return true }), nil
}

func (r *customerRepository) Search(_ context.Context, term string) ([]domain.Customer, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if term == "" {
		return sortedCustomers(r.store.customers, func(domain.Customer) bool { return true }), nil
	}

	needle := strings.ToLower(term)
	match := func(c domain.Customer) bool {
		return strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) ||
			strings.Contains(strings.ToLower(c.Document), needle)
	}

	return sortedCustomers(r.store.customers, match), nil
}

func (r *customerRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.customers)), nil
}

func (r *customerRepository) Exists(_ context.Context, customerID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.customers[customerID]
	return ok, nil
}

func (r *customerRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.emailExistsLocked(email), nil
}

func (r *customerRepository) DocumentExists(_ context.Context, document string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.documentExistsLocked(document), nil
}

func (r *customerRepository) Insert(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.emailExistsLocked(customer.Email) {
		return domain.Customer{}, domain.ErrEmailTaken
	}
	if r.documentExistsLocked(customer.Document) {
		return domain.Customer{}, domain.ErrDocumentTaken
	}

	customer.ID = uuid.New()
	customer.CreatedAt = time.Now().UTC()
	r.store.customers[customer.ID] = customer

	return customer, nil
}

func (r *customerRepository) Update(_ context.Context, customerID uuid.UUID, update domain.CustomerUpdate) (domain.Customer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	customer, ok := r.store.customers[customerID]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}

	customer.FirstName = update.FirstName
	customer.LastName = update.LastName
	customer.Address = update.Address
	customer.Phone = update.Phone
	r.store.customers[customerID] = customer

	return customer, nil
}

func (r *customerRepository) UpdatePasswordHash(_ context.Context, customerID uuid.UUID, passwordHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	customer, ok := r.store.customers[customerID]
	if !ok {
		return domain.ErrCustomerNotFound
	}

	customer.PasswordHash = passwordHash
	r.store.customers[customerID] = customer

	return nil
}

func (r *customerRepository) Delete(_ context.Context, customerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.customers[customerID]; !ok {
		return domain.ErrCustomerNotFound
	}

	for _, order := range r.store.orders {
		if order.CustomerID == customerID {
			return domain.ErrCustomerHasOrders
		}
	}

	delete(r.store.customers, customerID)
	// cart items cascade with their owner
	delete(r.store.carts, customerID)

	return nil
}

func (r *customerRepository) emailExistsLocked(email string) bool {
	for _, customer := range r.store.customers {
		if strings.EqualFold(customer.Email, email) {
			return true
		}
	}
	return false
}

func (r *customerRepository) documentExistsLocked(document string) bool {
	for _, customer := range r.store.customers {
		if customer.Document == document {
			return true
		}
	}
	return false
}

func sortedCustomers(customers map[uuid.UUID]domain.Customer, match func(domain.Customer) bool) []domain.Customer {
	var result []domain.Customer
	for _, customer := range customers {
		if match(customer) {
			result = append(result, customer)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].LastName != result[j].LastName {
			return result[i].LastName < result[j].LastName
		}
		return result[i].FirstName < result[j].FirstName
	})

	return result
}
