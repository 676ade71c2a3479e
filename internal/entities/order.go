package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ParseStatus matches case-insensitively, so "delivered" from a query
// string resolves to StatusDelivered.
func ParseStatus(s string) (OrderStatus, bool) {
	switch status := OrderStatus(strings.ToUpper(s)); status {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return status, true
	default:
		return "", false
	}
}

type Product struct {
	Name   string
	Images []string
}

type OrderItem struct {
	ID        string
	Quantity  int
	UnitPrice int64
	Product   Product
}

// ShippingAddress is the snapshot copied into an order at checkout.
// It is independent of the live Address records.
type ShippingAddress struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

type Order struct {
	ID        string
	UserID    string
	Total     int64
	Status    OrderStatus
	CreatedAt time.Time

	ShippingAddress ShippingAddress
	Items           []OrderItem
}

var ErrOrderNotFound = errors.New("order not found")

// OrderList is a user's full order collection as fetched from the store,
// newest first. Cached as one unit, gob-encoded.
type OrderList []Order

func (l OrderList) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (l *OrderList) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(l)
}

func init() {
	gob.Register(OrderList{})
	gob.Register(Order{})
	gob.Register(OrderItem{})
	gob.Register(ShippingAddress{})
}
