package entities

import (
	"errors"
	"time"
)

type Address struct {
	ID         string
	UserID     string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
	CreatedAt  time.Time
}

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrNoIdentity      = errors.New("no caller identity")
)
