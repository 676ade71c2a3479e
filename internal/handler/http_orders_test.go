package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/internal/handler"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrderLister struct {
	mock.Mock
}

func (m *mockOrderLister) ListOrders(ctx context.Context, userID string) ([]entities.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Order), args.Error(1)
}

func newOrdersRouter(svc *mockOrderLister, pageSize int) chi.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewOrdersHandler(logger, testAuth(), svc, pageSize)

	r := chi.NewRouter()
	h.Init(r)
	return r
}

func orderHistory(n int) []entities.Order {
	orders := make([]entities.Order, 0, n)
	for i := 1; i <= n; i++ {
		status := entities.StatusDelivered
		if i%2 == 0 {
			status = entities.StatusPending
		}
		orders = append(orders, entities.Order{
			ID:        fmt.Sprintf("order-%d", i),
			UserID:    "user-1",
			Status:    status,
			Total:     int64(i) * 1000,
			CreatedAt: time.Date(2026, 3, i, 12, 0, 0, 0, time.UTC),
			Items: []entities.OrderItem{
				{ID: fmt.Sprintf("item-%d", i), Quantity: 1, UnitPrice: int64(i) * 1000,
					Product: entities.Product{Name: fmt.Sprintf("Widget %d", i)}},
			},
		})
	}
	return orders
}

func TestOrdersHandler_ListOrders(t *testing.T) {
	testCases := []struct {
		name         string
		token        string
		query        string
		mockBehavior func(svc *mockOrderLister)
		wantStatus   int
		check        func(t *testing.T, page handler.OrdersPage)
	}{
		{
			name:  "first page by default",
			token: "token-user-1",
			query: "",
			mockBehavior: func(svc *mockOrderLister) {
				svc.On("ListOrders", mock.Anything, "user-1").
					Return(orderHistory(12), nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, page handler.OrdersPage) {
				assert.Equal(t, 12, page.TotalCount)
				assert.Equal(t, 3, page.TotalPages)
				assert.Equal(t, 1, page.CurrentPage)
				assert.Equal(t, 1, page.RangeStart)
				assert.Equal(t, 5, page.RangeEnd)
				require.Len(t, page.Orders, 5)
				assert.Equal(t, "order-1", page.Orders[0].ID)
			},
		},
		{
			name:  "out of range page is clamped",
			token: "token-user-1",
			query: "?page=99",
			mockBehavior: func(svc *mockOrderLister) {
				svc.On("ListOrders", mock.Anything, "user-1").
					Return(orderHistory(12), nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, page handler.OrdersPage) {
				assert.Equal(t, 3, page.CurrentPage)
				assert.Equal(t, 11, page.RangeStart)
				assert.Equal(t, 12, page.RangeEnd)
				assert.Len(t, page.Orders, 2)
			},
		},
		{
			name:  "search and status combine",
			token: "token-user-1",
			query: "?search=widget+1&status=pending",
			mockBehavior: func(svc *mockOrderLister) {
				svc.On("ListOrders", mock.Anything, "user-1").
					Return(orderHistory(12), nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, page handler.OrdersPage) {
				// "Widget 1", "Widget 10".."Widget 12" match the text, of
				// which 10 and 12 are PENDING
				assert.Equal(t, 2, page.TotalCount)
				require.Len(t, page.Orders, 2)
				assert.Equal(t, "order-10", page.Orders[0].ID)
				assert.Equal(t, "order-12", page.Orders[1].ID)
			},
		},
		{
			name:  "empty history",
			token: "token-user-1",
			query: "",
			mockBehavior: func(svc *mockOrderLister) {
				svc.On("ListOrders", mock.Anything, "user-1").
					Return([]entities.Order{}, nil).Once()
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, page handler.OrdersPage) {
				assert.Equal(t, 0, page.TotalCount)
				assert.Equal(t, 0, page.TotalPages)
				assert.Equal(t, 1, page.CurrentPage)
				assert.Equal(t, 0, page.RangeStart)
				assert.Equal(t, 0, page.RangeEnd)
				assert.Empty(t, page.Orders)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockOrderLister)
			tc.mockBehavior(svc)
			r := newOrdersRouter(svc, 5)

			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+tc.query, nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rr := httptest.NewRecorder()

			r.ServeHTTP(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
			var page handler.OrdersPage
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &page))
			tc.check(t, page)
			svc.AssertExpectations(t)
		})
	}
}

func TestOrdersHandler_ListOrders_Errors(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		svc := new(mockOrderLister)
		r := newOrdersRouter(svc, 5)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/?status=REFUNDED", nil)
		req.Header.Set("Authorization", "Bearer token-user-1")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "unknown status")
		svc.AssertExpectations(t)
	})

	t.Run("no token", func(t *testing.T) {
		svc := new(mockOrderLister)
		r := newOrdersRouter(svc, 5)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(mockOrderLister)
		svc.On("ListOrders", mock.Anything, "user-1").
			Return(nil, errors.New("db error")).Once()
		r := newOrdersRouter(svc, 5)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/", nil)
		req.Header.Set("Authorization", "Bearer token-user-1")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		svc.AssertExpectations(t)
	})
}
