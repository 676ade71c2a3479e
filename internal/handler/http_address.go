package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/internal/middleware"
	"github.com/shopfront/account-service/internal/service"
	"github.com/shopfront/account-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type AddressService interface {
	ListAddresses(ctx context.Context, userID string) ([]entities.Address, error)
	CreateAddress(ctx context.Context, userID string, in service.CreateAddressInput) (entities.Address, error)
	SetDefault(ctx context.Context, userID, addressID string) (entities.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

type AddressHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	auth     func(http.Handler) http.Handler
	svc      AddressService
}

func NewAddressHandler(logger *slog.Logger, auth func(http.Handler) http.Handler, svc AddressService) *AddressHandler {
	return &AddressHandler{
		logger:   logger.With(slog.String("handler", "address")),
		validate: validator.New(),
		auth:     auth,
		svc:      svc,
	}
}

func (h *AddressHandler) Init(r chi.Router) {
	r.Route("/api/addresses", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.ListAddresses)
		r.Post("/", h.CreateAddress)
		r.Patch("/{address_id}/default", h.SetDefault)
		r.Delete("/{address_id}", h.DeleteAddress)
	})
}

// ListAddresses returns the caller's address book.
// @Summary      List addresses
// @Tags         addresses
// @Security     BearerAuth
// @Success      200  {array}   Address
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /api/addresses [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	addresses, err := h.svc.ListAddresses(ctx, userID)
	if err != nil {
		h.writeError(ctx, w, "list addresses", userID, err)
		return
	}

	result := make([]Address, 0, len(addresses))
	for _, a := range addresses {
		result = append(result, AddressEntityToJSON(a))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// CreateAddress adds an address to the caller's address book.
// @Summary      Create address
// @Description  Creates an address. When is_default is set, the previous default is cleared in the same transaction.
// @Tags         addresses
// @Security     BearerAuth
// @Accept       json
// @Param        request body CreateAddressRequest true "Address fields"
// @Success      201  {object}  Address
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /api/addresses [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateAddressRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	address, err := h.svc.CreateAddress(ctx, userID, service.CreateAddressInput{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		h.writeError(ctx, w, "create address", userID, err)
		return
	}

	utils.WriteJSON(w, AddressEntityToJSON(address), http.StatusCreated)
}

// SetDefault marks an address as the caller's default.
// @Summary      Set default address
// @Description  Makes the address the single default for the caller.
// @Tags         addresses
// @Security     BearerAuth
// @Param        address_id path string true "Address identifier"
// @Success      200  {object}  Address
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse "Address not found"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /api/addresses/{address_id}/default [patch]
func (h *AddressHandler) SetDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	addressID := chi.URLParam(r, "address_id")

	address, err := h.svc.SetDefault(ctx, userID, addressID)
	if err != nil {
		h.writeError(ctx, w, "set default address", userID, err)
		return
	}

	defaultSwitches.Inc()
	utils.WriteJSON(w, AddressEntityToJSON(address), http.StatusOK)
}

// DeleteAddress removes an address from the caller's address book.
// @Summary      Delete address
// @Description  Deletes the address. Deleting the current default leaves the caller with no default.
// @Tags         addresses
// @Security     BearerAuth
// @Param        address_id path string true "Address identifier"
// @Success      204  "No Content"
// @Failure      401  {object}  utils.ErrorResponse
// @Failure      404  {object}  utils.ErrorResponse "Address not found"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /api/addresses/{address_id} [delete]
func (h *AddressHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	addressID := chi.URLParam(r, "address_id")

	if err := h.svc.DeleteAddress(ctx, userID, addressID); err != nil {
		h.writeError(ctx, w, "delete address", userID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *AddressHandler) writeError(ctx context.Context, w http.ResponseWriter, op, userID string, err error) {
	switch {
	case errors.Is(err, entities.ErrNoIdentity):
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, entities.ErrAddressNotFound):
		utils.WriteError(w, "address not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrInvalidAddress):
		utils.WriteValidationError(w, err)
	default:
		h.logger.ErrorContext(ctx, "failed to "+op,
			slog.Any("error", err), slog.String("user_id", userID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
