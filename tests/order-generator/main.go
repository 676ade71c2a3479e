package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type Item struct {
	ItemID        string   `json:"item_id"`
	ProductName   string   `json:"product_name"`
	ProductImages []string `json:"product_images,omitempty"`
	Quantity      int      `json:"quantity"`
	UnitPrice     int64    `json:"unit_price"`
}

type Order struct {
	OrderID         string          `json:"order_id"`
	UserID          string          `json:"user_id"`
	Status          string          `json:"status"`
	Total           int64           `json:"total"`
	CreatedAt       int64           `json:"created_at"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

var statuses = []string{"PENDING", "PROCESSING", "SHIPPED", "DELIVERED", "CANCELLED"}

var products = []string{
	"Wireless Headphones", "Smart Watch", "Laptop Stand", "Mechanical Keyboard",
	"USB-C Hub", "Desk Lamp", "Coffee Grinder", "Water Bottle",
}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateRandomOrder() Order {
	items := make([]Item, 0, rand.Intn(3)+1)
	var total int64
	for i := 0; i < cap(items); i++ {
		price := int64(rand.Intn(20000) + 500)
		qty := rand.Intn(3) + 1
		total += price * int64(qty)
		items = append(items, Item{
			ItemID:      randomString(12),
			ProductName: products[rand.Intn(len(products))],
			Quantity:    qty,
			UnitPrice:   price,
		})
	}

	return Order{
		OrderID:   randomString(16),
		UserID:    fmt.Sprintf("user-%d", rand.Intn(10)),
		Status:    statuses[rand.Intn(len(statuses))],
		Total:     total,
		CreatedAt: time.Now().Unix(),
		Items:     items,
		ShippingAddress: ShippingAddress{
			Street:     fmt.Sprintf("%d Main St", rand.Intn(100)+1),
			City:       "Springfield",
			State:      "IL",
			PostalCode: fmt.Sprintf("%05d", rand.Intn(99999)),
			Country:    "US",
		},
	}
}

func main() {
	addr := kafka.TCP("localhost:9092")

	writer := &kafka.Writer{
		Addr:  addr,
		Topic: "orders",
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			order := generateRandomOrder()
			data, _ := json.Marshal(order)
			writer.WriteMessages(context.Background(), kafka.Message{Value: data})
			log.Println("order generated", order.OrderID)
		case <-ctx.Done():
			return
		}
	}
}
