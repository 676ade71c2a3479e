package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopfront/account-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type addressRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewAddressRepo(db *sqlx.DB) *addressRepo {
	return &addressRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var addressColumns = []string{
	"address_id", "user_id", "street", "city",
	"state", "postal_code", "country", "is_default", "created_at",
}

// GetAddress is scoped by user_id, so another user's address reads as
// not found rather than forbidden.
func (r *addressRepo) GetAddress(ctx context.Context, userID, addressID string) (entities.Address, error) {
	query, args := r.qb.Select(addressColumns...).
		From("addresses").
		Where(sq.Eq{"address_id": addressID, "user_id": userID}).
		MustSql()

	var address Address
	err := getContext(ctx, r.db, &address, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Address{}, entities.ErrAddressNotFound
	}
	if err != nil {
		return entities.Address{}, fmt.Errorf("failed to get address: %w", err)
	}

	return AddressToEntity(address), nil
}

func (r *addressRepo) ListAddresses(ctx context.Context, userID string) ([]entities.Address, error) {
	query, args := r.qb.Select(addressColumns...).
		From("addresses").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		MustSql()

	var addresses []Address
	if err := selectContext(ctx, r.db, &addresses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select addresses: %w", err)
	}

	result := make([]entities.Address, 0, len(addresses))
	for _, a := range addresses {
		result = append(result, AddressToEntity(a))
	}
	return result, nil
}

func (r *addressRepo) InsertAddress(ctx context.Context, a entities.Address) error {
	query, args := r.qb.Insert("addresses").
		Columns(addressColumns...).
		Values(a.ID, a.UserID, a.Street, a.City, a.State, a.PostalCode, a.Country, a.IsDefault, a.CreatedAt).
		MustSql()

	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}
	return nil
}

// ClearDefault unsets every default the user has. Must run before
// MarkDefault within the same transaction.
func (r *addressRepo) ClearDefault(ctx context.Context, userID string) error {
	query, args := r.qb.Update("addresses").
		Set("is_default", false).
		Where(sq.Eq{"user_id": userID, "is_default": true}).
		MustSql()

	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to clear default addresses: %w", err)
	}
	return nil
}

func (r *addressRepo) MarkDefault(ctx context.Context, userID, addressID string) error {
	query, args := r.qb.Update("addresses").
		Set("is_default", true).
		Where(sq.Eq{"address_id": addressID, "user_id": userID}).
		MustSql()

	res, err := execContext(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark default address: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrAddressNotFound
	}
	return nil
}

func (r *addressRepo) DeleteAddress(ctx context.Context, userID, addressID string) error {
	query, args := r.qb.Delete("addresses").
		Where(sq.Eq{"address_id": addressID, "user_id": userID}).
		MustSql()

	res, err := execContext(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete address: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return entities.ErrAddressNotFound
	}
	return nil
}
