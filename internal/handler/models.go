package handler

import (
	"time"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/internal/orderlist"
)

// Address is an address book entry
type Address struct {
	ID         string    `json:"address_id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateAddressRequest is the payload for creating an address
type CreateAddressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
	IsDefault  bool   `json:"is_default"`
}

// Product is the product snapshot embedded in an order item
type Product struct {
	Name   string   `json:"name"`
	Images []string `json:"images,omitempty"`
}

// OrderItem is one line of an order
type OrderItem struct {
	ID        string  `json:"item_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
	Product   Product `json:"product"`
}

// ShippingAddress is the address snapshot taken at checkout
type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Order is one past order with its items and shipping snapshot
type Order struct {
	ID              string          `json:"order_id"`
	Total           int64           `json:"total"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// OrdersPage is one page of the filtered order history plus the
// metadata for "Showing X to Y of Z" and the pager
type OrdersPage struct {
	Orders      []Order `json:"orders"`
	TotalCount  int     `json:"total_count"`
	TotalPages  int     `json:"total_pages"`
	CurrentPage int     `json:"current_page"`
	RangeStart  int     `json:"range_start"`
	RangeEnd    int     `json:"range_end"`
}

func AddressEntityToJSON(a entities.Address) Address {
	return Address{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
		CreatedAt:  a.CreatedAt,
	}
}

func ItemEntityToJSON(i entities.OrderItem) OrderItem {
	return OrderItem{
		ID:        i.ID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
		Product: Product{
			Name:   i.Product.Name,
			Images: i.Product.Images,
		},
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, ItemEntityToJSON(it))
	}

	return Order{
		ID:        o.ID,
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt,
		Items:     items,
		ShippingAddress: ShippingAddress{
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
	}
}

func OrdersPageToJSON(p orderlist.Page) OrdersPage {
	orders := make([]Order, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, OrderEntityToJSON(o))
	}

	return OrdersPage{
		Orders:      orders,
		TotalCount:  p.TotalCount,
		TotalPages:  p.TotalPages,
		CurrentPage: p.CurrentPage,
		RangeStart:  p.RangeStart,
		RangeEnd:    p.RangeEnd,
	}
}

// OrderEvent is an order as published by the commerce platform
type OrderEvent struct {
	OrderID         string               `json:"order_id" validate:"required"`
	UserID          string               `json:"user_id" validate:"required"`
	Status          string               `json:"status" validate:"required"`
	Total           int64                `json:"total" validate:"gte=0"`
	CreatedAt       int64                `json:"created_at" validate:"required"`
	Items           []OrderItemEvent     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddressEvent `json:"shipping_address" validate:"required"`
}

type OrderItemEvent struct {
	ItemID        string   `json:"item_id" validate:"required"`
	ProductName   string   `json:"product_name" validate:"required"`
	ProductImages []string `json:"product_images,omitempty"`
	Quantity      int      `json:"quantity" validate:"required,gt=0"`
	UnitPrice     int64    `json:"unit_price" validate:"gte=0"`
}

type ShippingAddressEvent struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

func OrderEventToEntity(e OrderEvent) entities.Order {
	items := make([]entities.OrderItem, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, entities.OrderItem{
			ID:        it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Product: entities.Product{
				Name:   it.ProductName,
				Images: it.ProductImages,
			},
		})
	}

	return entities.Order{
		ID:        e.OrderID,
		UserID:    e.UserID,
		Total:     e.Total,
		Status:    entities.OrderStatus(e.Status),
		CreatedAt: time.Unix(e.CreatedAt, 0).UTC(),
		Items:     items,
		ShippingAddress: entities.ShippingAddress{
			Street:     e.ShippingAddress.Street,
			City:       e.ShippingAddress.City,
			State:      e.ShippingAddress.State,
			PostalCode: e.ShippingAddress.PostalCode,
			Country:    e.ShippingAddress.Country,
		},
	}
}
