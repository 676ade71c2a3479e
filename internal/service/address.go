package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/pkg/trm"
	"github.com/shopfront/account-service/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AddressRepo interface {
	GetAddress(ctx context.Context, userID, addressID string) (entities.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]entities.Address, error)
	InsertAddress(ctx context.Context, address entities.Address) error

	// ClearDefault and MarkDefault are only meaningful inside a
	// transaction; see the clear-then-set sequence below.
	ClearDefault(ctx context.Context, userID string) error
	MarkDefault(ctx context.Context, userID, addressID string) error
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

type CreateAddressInput struct {
	Street     string `validate:"required"`
	City       string `validate:"required"`
	State      string `validate:"required"`
	PostalCode string `validate:"required"`
	Country    string `validate:"required"`
	IsDefault  bool
}

// addressService maintains the address book and its one invariant: a
// user has at most one default address at any observable moment.
type addressService struct {
	logger    *slog.Logger
	validate  *validator.Validate
	txManager trm.Manager
	repo      AddressRepo
}

func NewAddressService(logger *slog.Logger, txManager trm.Manager, repo AddressRepo) *addressService {
	return &addressService{
		logger:    logger.With(slog.String("service", "address")),
		validate:  validator.New(),
		txManager: txManager,
		repo:      repo,
	}
}

func (s *addressService) ListAddresses(ctx context.Context, userID string) ([]entities.Address, error) {
	if userID == "" {
		return nil, entities.ErrNoIdentity
	}
	return s.repo.ListAddresses(ctx, userID)
}

// CreateAddress inserts a new address. When the caller requests it as
// default, the user's current default is cleared first, inside the same
// transaction, so no reader ever observes two defaults. A non-default
// create never auto-promotes, even when the user has no default at all.
func (s *addressService) CreateAddress(ctx context.Context, userID string, in CreateAddressInput) (entities.Address, error) {
	if userID == "" {
		return entities.Address{}, entities.ErrNoIdentity
	}
	if err := s.validate.Struct(in); err != nil {
		return entities.Address{}, fmt.Errorf("%w: %w", entities.ErrInvalidAddress, err)
	}

	address := entities.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		Street:     in.Street,
		City:       in.City,
		State:      in.State,
		PostalCode: in.PostalCode,
		Country:    in.Country,
		IsDefault:  in.IsDefault,
		CreatedAt:  time.Now().UTC(),
	}

	if !in.IsDefault {
		if err := s.repo.InsertAddress(ctx, address); err != nil {
			return entities.Address{}, err
		}
		s.logger.Debug("address created", "user_id", userID, "address_id", address.ID)
		return address, nil
	}

	// the partial unique index can reject a racing second default, so
	// the whole sequence is retried
	err := utils.Retry(retryConfig, func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.ClearDefault(ctx, userID); err != nil {
				return err
			}
			return s.repo.InsertAddress(ctx, address)
		})
	})
	if err != nil {
		return entities.Address{}, err
	}

	s.logger.Debug("default address created", "user_id", userID, "address_id", address.ID)
	return address, nil
}

// SetDefault switches the user's default to the given address. The
// ownership check, the clear, and the set run in one transaction: a
// crash mid-sequence rolls back to the previous state, and two racing
// switches for the same user serialize on the store instead of leaving
// two defaults behind. Idempotent for an address that already is the default.
func (s *addressService) SetDefault(ctx context.Context, userID, addressID string) (entities.Address, error) {
	if userID == "" {
		return entities.Address{}, entities.ErrNoIdentity
	}

	var address entities.Address
	err := utils.Retry(retryConfig, func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			found, err := s.repo.GetAddress(ctx, userID, addressID)
			if err != nil {
				return err
			}

			if err := s.repo.ClearDefault(ctx, userID); err != nil {
				return err
			}
			if err := s.repo.MarkDefault(ctx, userID, addressID); err != nil {
				return err
			}

			found.IsDefault = true
			address = found
			return nil
		})
	}, entities.ErrAddressNotFound)
	if err != nil {
		return entities.Address{}, err
	}

	s.logger.Debug("default address set", "user_id", userID, "address_id", addressID)
	return address, nil
}

// DeleteAddress removes the address. Deleting the current default
// deliberately leaves the user with zero defaults; nothing is promoted
// in its place until the user sets one explicitly.
func (s *addressService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if userID == "" {
		return entities.ErrNoIdentity
	}

	if err := s.repo.DeleteAddress(ctx, userID, addressID); err != nil {
		return err
	}

	s.logger.Debug("address deleted", "user_id", userID, "address_id", addressID)
	return nil
}
