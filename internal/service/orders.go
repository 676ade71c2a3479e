package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/pkg/trm"
	"github.com/shopfront/account-service/pkg/utils"

	"golang.org/x/sync/singleflight"
)

type OrderRepo interface {
	ListOrders(ctx context.Context, userID string) ([]entities.Order, error)

	// Save operations are idempotent, the repo uses ON CONFLICT DO NOTHING
	SaveOrder(ctx context.Context, order entities.Order) error
	SaveShippingAddress(ctx context.Context, orderID string, address entities.ShippingAddress) error
	SaveItems(ctx context.Context, orderID string, items []entities.OrderItem) error
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// orderService maintains the per-user order read model. A user's full
// collection is fetched once and cached; filtering and paging happen on
// top of that collection, not against the store.
type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	cache     Cache
	group     singleflight.Group
}

func NewOrderService(logger *slog.Logger, txManager trm.Manager, repo OrderRepo, cache Cache) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "orders")),
		txManager: txManager,
		repo:      repo,
		cache:     cache,
	}
}

var retryConfig = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  5,
	Multiplier:   2,
}

// ListOrders returns the caller's complete order collection, newest
// first. Concurrent requests for the same user share one store fetch.
func (s *orderService) ListOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	if userID == "" {
		return nil, entities.ErrNoIdentity
	}

	if data, ok := s.cache.Get(userID); ok {
		var orders entities.OrderList
		if err := orders.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal cached orders", slog.String("user_id", userID), slog.Any("error", err))
			return nil, err
		}
		return orders, nil
	}

	result, err, _ := s.group.Do(userID, func() (any, error) {
		var orders []entities.Order
		fn := func() error {
			var err error
			orders, err = s.repo.ListOrders(ctx, userID)
			return err
		}
		if err := utils.Retry(retryConfig, fn); err != nil {
			return nil, err
		}

		data, err := entities.OrderList(orders).Marshal()
		if err != nil {
			s.logger.Error("failed to marshal orders", slog.String("user_id", userID), slog.Any("error", err))
			return nil, err
		}
		s.cache.Set(userID, data)
		return orders, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]entities.Order), nil
}

// SaveOrder materializes an ingested order with its shipping snapshot
// and items in one transaction, then drops the owner's cached
// collection so the next read sees it.
func (s *orderService) SaveOrder(ctx context.Context, order entities.Order) error {
	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.repo.SaveShippingAddress(ctx, order.ID, order.ShippingAddress); err != nil {
				return fmt.Errorf("failed to save shipping address: %w", err)
			}
			if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}

			s.logger.Debug("order saved", "order_id", order.ID, "user_id", order.UserID)
			return nil
		})
	}

	if err := utils.Retry(retryConfig, fn); err != nil {
		return err
	}

	s.cache.Delete(order.UserID)
	return nil
}
