package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/internal/middleware"
	"github.com/shopfront/account-service/internal/orderlist"
	"github.com/shopfront/account-service/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type OrderLister interface {
	ListOrders(ctx context.Context, userID string) ([]entities.Order, error)
}

type OrdersHandler struct {
	logger   *slog.Logger
	auth     func(http.Handler) http.Handler
	svc      OrderLister
	pageSize int
}

func NewOrdersHandler(logger *slog.Logger, auth func(http.Handler) http.Handler, svc OrderLister, pageSize int) *OrdersHandler {
	if pageSize <= 0 {
		pageSize = orderlist.DefaultPageSize
	}
	return &OrdersHandler{
		logger:   logger.With(slog.String("handler", "orders")),
		auth:     auth,
		svc:      svc,
		pageSize: pageSize,
	}
}

func (h *OrdersHandler) Init(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.ListOrders)
	})
}

// ListOrders returns one page of the caller's filtered order history.
// @Summary      List orders
// @Description  Filters the caller's order history by free text and status, then returns the requested page. Out-of-range pages are clamped, never an error.
// @Tags         orders
// @Security     BearerAuth
// @Param        search  query  string  false  "Matches the order id or any product name, case-insensitive"
// @Param        status  query  string  false  "all, PENDING, PROCESSING, SHIPPED, DELIVERED or CANCELLED"
// @Param        page    query  int     false  "1-indexed page, defaults to 1"
// @Success      200  {object}  OrdersPage
// @Failure      400  {object}  utils.ErrorResponse "Unknown status"
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /api/orders [get]
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	status := r.URL.Query().Get("status")
	if status == "" {
		status = orderlist.StatusAll
	}
	if status != orderlist.StatusAll {
		if _, ok := entities.ParseStatus(status); !ok {
			utils.WriteError(w, "unknown status", http.StatusBadRequest)
			return
		}
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	orders, err := h.svc.ListOrders(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrNoIdentity) {
			utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to list orders",
			slog.Any("error", err), slog.String("user_id", userID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	result := orderlist.Paginate(orders, orderlist.Query{
		Search:   r.URL.Query().Get("search"),
		Status:   status,
		Page:     page,
		PageSize: h.pageSize,
	})

	utils.WriteJSON(w, OrdersPageToJSON(result), http.StatusOK)
}
