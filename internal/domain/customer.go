package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID           uuid.UUID
	Document     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Address      string
	Phone        string

	CreatedAt time.Time
}

// CustomerUpdate carries the only fields mutable after registration.
// Email, document and password hash change through dedicated operations.
type CustomerUpdate struct {
	FirstName string
	LastName  string
	Address   string
	Phone     string
}
