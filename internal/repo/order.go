package repo

import (
	"context"
	"fmt"

	"github.com/shopfront/account-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type orderRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListOrders returns the user's full order collection, newest first,
// with items and the shipping snapshot attached.
func (r *orderRepo) ListOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	query, args := r.qb.Select("order_id", "user_id", "status", "total_cents", "created_at").
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		MustSql()

	var orders []Order
	if err := selectContext(ctx, r.db, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}

	if len(orders) == 0 {
		return []entities.Order{}, nil
	}

	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.OrderID
	}

	query, args = r.qb.Select("order_id", "street", "city", "state", "postal_code", "country").
		From("shipping_addresses").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var shipping []ShippingAddress
	if err := selectContext(ctx, r.db, &shipping, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select shipping addresses: %w", err)
	}
	shippingMap := make(map[string]ShippingAddress, len(shipping))
	for _, sa := range shipping {
		shippingMap[sa.OrderID] = sa
	}

	query, args = r.qb.Select("item_id", "order_id", "product_name", "product_images", "quantity", "unit_price_cents").
		From("order_items").
		Where(sq.Eq{"order_id": ids}).
		OrderBy("item_id").
		MustSql()

	var items []OrderItem
	if err := selectContext(ctx, r.db, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select order items: %w", err)
	}
	itemsMap := make(map[string][]OrderItem, len(ids))
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, shippingMap[order.OrderID], itemsMap[order.OrderID]))
	}

	return result, nil
}

// Save operations are idempotent via ON CONFLICT DO NOTHING, so a
// replayed ingest message does not duplicate rows.

func (r *orderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	query, args := r.qb.Insert("orders").
		Columns("order_id", "user_id", "status", "total_cents", "created_at").
		Values(o.ID, o.UserID, string(o.Status), o.Total, o.CreatedAt).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *orderRepo) SaveShippingAddress(ctx context.Context, orderID string, sa entities.ShippingAddress) error {
	query, args := r.qb.Insert("shipping_addresses").
		Columns("order_id", "street", "city", "state", "postal_code", "country").
		Values(orderID, sa.Street, sa.City, sa.State, sa.PostalCode, sa.Country).
		Suffix("ON CONFLICT (order_id) DO NOTHING").
		MustSql()

	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to save shipping address: %w", err)
	}
	return nil
}

func (r *orderRepo) SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").
		Columns("item_id", "order_id", "product_name", "product_images", "quantity", "unit_price_cents").
		Suffix("ON CONFLICT (item_id) DO NOTHING")

	for _, it := range items {
		q = q.Values(it.ID, orderID, it.Product.Name, pq.StringArray(it.Product.Images), it.Quantity, it.UnitPrice)
	}

	query, args := q.MustSql()
	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to save order items: %w", err)
	}
	return nil
}
