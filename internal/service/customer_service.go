package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/metrics"
	"github.com/jcardenas/techstore/internal/port"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 12 matches the work factor used for every stored hash.
const bcryptCost = 12

// dummyHash is compared against when the email is unknown, so that
// authentication takes the same time for unknown emails and wrong passwords.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

type CustomerService struct {
	customers port.CustomerRepository
	metrics   *metrics.StoreMetrics
	logger    *logrus.Entry
}

func NewCustomer(customers port.CustomerRepository, m *metrics.StoreMetrics, logger *logrus.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		metrics:   m,
		logger:    logger.WithField("component", "customer_service"),
	}
}

type CreateCustomerInput struct {
	Document  string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Address   string
	Phone     string
}

func (s *CustomerService) Create(ctx context.Context, input CreateCustomerInput) (domain.Customer, error) {
	// Pre-checks give precise conflict errors; the unique indexes remain
	// authoritative when a concurrent request wins the race.
	taken, err := s.customers.EmailExists(ctx, input.Email)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customers.EmailExists: %w", err)
	}
	if taken {
		return domain.Customer{}, domain.ErrEmailTaken
	}

	taken, err = s.customers.DocumentExists(ctx, input.Document)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customers.DocumentExists: %w", err)
	}
	if taken {
		return domain.Customer{}, domain.ErrDocumentTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	customer, err := s.customers.Insert(ctx, domain.Customer{
		Document:     input.Document,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Address:      input.Address,
		Phone:        input.Phone,
	})
	if err != nil {
		if domain.IsConflict(err) {
			return domain.Customer{}, err
		}
		return domain.Customer{}, fmt.Errorf("customers.Insert: %w", err)
	}

	s.metrics.CustomerCreated()
	s.logger.WithField("customer_id", customer.ID).Info("customer created")

	return sanitizeCustomer(customer), nil
}

func (s *CustomerService) Get(ctx context.Context, customerID uuid.UUID) (domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return domain.Customer{}, err
	}
	return sanitizeCustomer(customer), nil
}

func (s *CustomerService) GetByEmail(ctx context.Context, email string) (domain.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return domain.Customer{}, err
	}
	return sanitizeCustomer(customer), nil
}

func (s *CustomerService) GetByDocument(ctx context.Context, document string) (domain.Customer, error) {
	customer, err := s.customers.GetByDocument(ctx, document)
	if err != nil {
		return domain.Customer{}, err
	}
	return sanitizeCustomer(customer), nil
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("customers.List: %w", err)
	}
	return lo.Map(customers, func(c domain.Customer, _ int) domain.Customer {
		return sanitizeCustomer(c)
	}), nil
}

// Search matches term case-insensitively against first name, last name, email
// and document. An empty term returns the full list.
func (s *CustomerService) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	customers, err := s.customers.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("customers.Search: %w", err)
	}
	return lo.Map(customers, func(c domain.Customer, _ int) domain.Customer {
		return sanitizeCustomer(c)
	}), nil
}

func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.customers.Count(ctx)
}

func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, update domain.CustomerUpdate) (domain.Customer, error) {
	customer, err := s.customers.Update(ctx, customerID, update)
	if err != nil {
		return domain.Customer{}, err
	}
	return sanitizeCustomer(customer), nil
}

func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.customers.Delete(ctx, customerID); err != nil {
		return err
	}

	s.logger.WithField("customer_id", customerID).Info("customer deleted")
	return nil
}

// Authenticate reports ok=false, without an error, when the email is unknown
// or the password does not verify.
func (s *CustomerService) Authenticate(ctx context.Context, email, password string) (domain.Customer, bool, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			// burn a hash comparison anyway
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return domain.Customer{}, false, nil
		}
		return domain.Customer{}, false, fmt.Errorf("customers.GetByEmail: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)) != nil {
		return domain.Customer{}, false, nil
	}

	return sanitizeCustomer(customer), true, nil
}

func (s *CustomerService) ChangePassword(ctx context.Context, customerID uuid.UUID, current, newPassword string) error {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(current)) != nil {
		return domain.ErrCurrentPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if err := s.customers.UpdatePasswordHash(ctx, customerID, string(hash)); err != nil {
		return err
	}

	s.logger.WithField("customer_id", customerID).Info("password changed")
	return nil
}

func (s *CustomerService) ResetPassword(ctx context.Context, email, newPassword string) error {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}

	if err := s.customers.UpdatePasswordHash(ctx, customer.ID, string(hash)); err != nil {
		return err
	}

	s.logger.WithField("customer_id", customer.ID).Info("password reset")
	return nil
}

// sanitizeCustomer strips the password hash before the record leaves the
// service layer.
func sanitizeCustomer(customer domain.Customer) domain.Customer {
	customer.PasswordHash = ""
	return customer
}
