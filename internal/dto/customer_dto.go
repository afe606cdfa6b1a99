package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/samber/lo"
)

// Customer is the outbound customer shape. It never carries the password
// hash.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Document  string    `json:"document"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func CustomerFromDomain(c domain.Customer) Customer {
	return Customer{
		ID:        c.ID,
		Document:  c.Document,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Address:   c.Address,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}

func CustomersFromDomain(customers []domain.Customer) []Customer {
	return lo.Map(customers, func(c domain.Customer, _ int) Customer {
		return CustomerFromDomain(c)
	})
}

type CreateCustomerRequest struct {
	Document  string `json:"document"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

func (r CreateCustomerRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "document", r.Document)
	errs = checkMaxLen(errs, "document", r.Document, 20)
	errs = checkRequired(errs, "first_name", r.FirstName)
	errs = checkMaxLen(errs, "first_name", r.FirstName, 50)
	errs = checkRequired(errs, "last_name", r.LastName)
	errs = checkMaxLen(errs, "last_name", r.LastName, 50)
	errs = checkRequired(errs, "email", r.Email)
	errs = checkMaxLen(errs, "email", r.Email, 100)
	errs = checkEmail(errs, "email", r.Email)
	errs = checkRequired(errs, "password", r.Password)
	if len(r.Password) > 0 && len(r.Password) < 6 {
		errs = append(errs, FieldError{Field: "password", Message: "must be at least 6 characters"})
	}
	errs = checkMaxLen(errs, "password", r.Password, 100)
	errs = checkMaxLen(errs, "address", r.Address, 200)
	errs = checkMaxLen(errs, "phone", r.Phone, 20)

	return errsOrNil(errs)
}

// UpdateCustomerRequest covers only the mutable fields: email, document and
// password are immutable via this path.
type UpdateCustomerRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

func (r UpdateCustomerRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "first_name", r.FirstName)
	errs = checkMaxLen(errs, "first_name", r.FirstName, 50)
	errs = checkRequired(errs, "last_name", r.LastName)
	errs = checkMaxLen(errs, "last_name", r.LastName, 50)
	errs = checkMaxLen(errs, "address", r.Address, 200)
	errs = checkMaxLen(errs, "phone", r.Phone, 20)

	return errsOrNil(errs)
}

func (r UpdateCustomerRequest) ToDomain() domain.CustomerUpdate {
	return domain.CustomerUpdate{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Address:   r.Address,
		Phone:     r.Phone,
	}
}

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r CredentialsRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "email", r.Email)
	errs = checkRequired(errs, "password", r.Password)

	return errsOrNil(errs)
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "current_password", r.CurrentPassword)
	errs = checkRequired(errs, "new_password", r.NewPassword)
	if len(r.NewPassword) > 0 && len(r.NewPassword) < 6 {
		errs = append(errs, FieldError{Field: "new_password", Message: "must be at least 6 characters"})
	}
	errs = checkMaxLen(errs, "new_password", r.NewPassword, 100)

	return errsOrNil(errs)
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() error {
	var errs ValidationErrors

	errs = checkRequired(errs, "email", r.Email)
	errs = checkEmail(errs, "email", r.Email)
	errs = checkRequired(errs, "new_password", r.NewPassword)
	if len(r.NewPassword) > 0 && len(r.NewPassword) < 6 {
		errs = append(errs, FieldError{Field: "new_password", Message: "must be at least 6 characters"})
	}

	return errsOrNil(errs)
}
