package repo

import (
	"time"

	"github.com/shopfront/account-service/internal/entities"

	"github.com/lib/pq"
)

type Address struct {
	AddressID  string    `db:"address_id"`
	UserID     string    `db:"user_id"`
	Street     string    `db:"street"`
	City       string    `db:"city"`
	State      string    `db:"state"`
	PostalCode string    `db:"postal_code"`
	Country    string    `db:"country"`
	IsDefault  bool      `db:"is_default"`
	CreatedAt  time.Time `db:"created_at"`
}

type Order struct {
	OrderID    string    `db:"order_id"`
	UserID     string    `db:"user_id"`
	Status     string    `db:"status"`
	TotalCents int64     `db:"total_cents"`
	CreatedAt  time.Time `db:"created_at"`
}

type ShippingAddress struct {
	OrderID    string `db:"order_id"`
	Street     string `db:"street"`
	City       string `db:"city"`
	State      string `db:"state"`
	PostalCode string `db:"postal_code"`
	Country    string `db:"country"`
}

type OrderItem struct {
	ItemID         string         `db:"item_id"`
	OrderID        string         `db:"order_id"`
	ProductName    string         `db:"product_name"`
	ProductImages  pq.StringArray `db:"product_images"`
	Quantity       int            `db:"quantity"`
	UnitPriceCents int64          `db:"unit_price_cents"`
}

func AddressToEntity(a Address) entities.Address {
	return entities.Address{
		ID:         a.AddressID,
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
	}
}

func ItemToEntity(i OrderItem) entities.OrderItem {
	return entities.OrderItem{
		ID:        i.ItemID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPriceCents,
		Product: entities.Product{
			Name:   i.ProductName,
			Images: []string(i.ProductImages),
		},
	}
}

func OrderToEntity(o Order, sa ShippingAddress, items []OrderItem) entities.Order {
	order := entities.Order{
		ID:        o.OrderID,
		UserID:    o.UserID,
		Total:     o.TotalCents,
		Status:    entities.OrderStatus(o.Status),
		CreatedAt: o.CreatedAt,
		ShippingAddress: entities.ShippingAddress{
			Street:     sa.Street,
			City:       sa.City,
			State:      sa.State,
			PostalCode: sa.PostalCode,
			Country:    sa.Country,
		},
	}

	if len(items) > 0 {
		order.Items = make([]entities.OrderItem, 0, len(items))
		for _, it := range items {
			order.Items = append(order.Items, ItemToEntity(it))
		}
	}

	return order
}
