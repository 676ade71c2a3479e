package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopfront/account-service/internal/entities"
	"github.com/shopfront/account-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxManager runs the callback directly; the fake repo below is the
// "store", so there is nothing to roll back in these tests.
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}

// fakeAddressRepo behaves like the addresses table and records the
// order of mutating calls.
type fakeAddressRepo struct {
	addresses map[string]entities.Address
	calls     []string
}

func newFakeAddressRepo() *fakeAddressRepo {
	return &fakeAddressRepo{addresses: make(map[string]entities.Address)}
}

func (r *fakeAddressRepo) GetAddress(_ context.Context, userID, addressID string) (entities.Address, error) {
	r.calls = append(r.calls, "GetAddress")
	a, ok := r.addresses[addressID]
	if !ok || a.UserID != userID {
		return entities.Address{}, entities.ErrAddressNotFound
	}
	return a, nil
}

func (r *fakeAddressRepo) ListAddresses(_ context.Context, userID string) ([]entities.Address, error) {
	r.calls = append(r.calls, "ListAddresses")
	var result []entities.Address
	for _, a := range r.addresses {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeAddressRepo) InsertAddress(_ context.Context, address entities.Address) error {
	r.calls = append(r.calls, "InsertAddress")
	r.addresses[address.ID] = address
	return nil
}

func (r *fakeAddressRepo) ClearDefault(_ context.Context, userID string) error {
	r.calls = append(r.calls, "ClearDefault")
	for id, a := range r.addresses {
		if a.UserID == userID && a.IsDefault {
			a.IsDefault = false
			r.addresses[id] = a
		}
	}
	return nil
}

func (r *fakeAddressRepo) MarkDefault(_ context.Context, userID, addressID string) error {
	r.calls = append(r.calls, "MarkDefault")
	a, ok := r.addresses[addressID]
	if !ok || a.UserID != userID {
		return entities.ErrAddressNotFound
	}
	a.IsDefault = true
	r.addresses[addressID] = a
	return nil
}

func (r *fakeAddressRepo) DeleteAddress(_ context.Context, userID, addressID string) error {
	r.calls = append(r.calls, "DeleteAddress")
	a, ok := r.addresses[addressID]
	if !ok || a.UserID != userID {
		return entities.ErrAddressNotFound
	}
	delete(r.addresses, addressID)
	return nil
}

func (r *fakeAddressRepo) defaultCount(userID string) int {
	count := 0
	for _, a := range r.addresses {
		if a.UserID == userID && a.IsDefault {
			count++
		}
	}
	return count
}

func validInput(isDefault bool) service.CreateAddressInput {
	return service.CreateAddressInput{
		Street:     "12 Baker St",
		City:       "Springfield",
		State:      "IL",
		PostalCode: "62704",
		Country:    "US",
		IsDefault:  isDefault,
	}
}

func newAddressService(repo service.AddressRepo) addressManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewAddressService(logger, fakeTxManager{}, repo)
}

type addressManager interface {
	ListAddresses(ctx context.Context, userID string) ([]entities.Address, error)
	CreateAddress(ctx context.Context, userID string, in service.CreateAddressInput) (entities.Address, error)
	SetDefault(ctx context.Context, userID, addressID string) (entities.Address, error)
	DeleteAddress(ctx context.Context, userID, addressID string) error
}

func TestAddressService_SingleDefaultInvariant(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAddressRepo()
	s := newAddressService(repo)
	const user = "user-1"

	checkInvariant := func(step string) {
		t.Helper()
		if count := repo.defaultCount(user); count > 1 {
			t.Fatalf("after %s: %d default addresses, want at most 1", step, count)
		}
	}

	first, err := s.CreateAddress(ctx, user, validInput(true))
	require.NoError(t, err)
	checkInvariant("create first default")
	assert.Equal(t, 1, repo.defaultCount(user))

	second, err := s.CreateAddress(ctx, user, validInput(true))
	require.NoError(t, err)
	checkInvariant("create second default")
	assert.True(t, repo.addresses[second.ID].IsDefault)
	assert.False(t, repo.addresses[first.ID].IsDefault, "previous default must be cleared")

	_, err = s.SetDefault(ctx, user, first.ID)
	require.NoError(t, err)
	checkInvariant("switch default back")
	assert.True(t, repo.addresses[first.ID].IsDefault)

	// idempotent: switching to the current default changes nothing
	updated, err := s.SetDefault(ctx, user, first.ID)
	require.NoError(t, err)
	checkInvariant("repeat switch")
	assert.True(t, updated.IsDefault)
	assert.Equal(t, 1, repo.defaultCount(user))

	// deleting the default leaves zero defaults, nothing is promoted
	require.NoError(t, s.DeleteAddress(ctx, user, first.ID))
	checkInvariant("delete default")
	assert.Equal(t, 0, repo.defaultCount(user))

	// a non-default create does not become default even with none set
	_, err = s.CreateAddress(ctx, user, validInput(false))
	require.NoError(t, err)
	assert.Equal(t, 0, repo.defaultCount(user))
}

func TestAddressService_CreateAddress(t *testing.T) {
	testCases := []struct {
		name    string
		userID  string
		input   service.CreateAddressInput
		wantErr error
	}{
		{
			name:   "ok",
			userID: "user-1",
			input:  validInput(false),
		},
		{
			name:   "ok with default",
			userID: "user-1",
			input:  validInput(true),
		},
		{
			name:    "missing fields",
			userID:  "user-1",
			input:   service.CreateAddressInput{Street: "12 Baker St", Country: "US"},
			wantErr: entities.ErrInvalidAddress,
		},
		{
			name:    "no identity",
			userID:  "",
			input:   validInput(false),
			wantErr: entities.ErrNoIdentity,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeAddressRepo()
			s := newAddressService(repo)

			created, err := s.CreateAddress(context.Background(), tc.userID, tc.input)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, repo.addresses, "nothing must be stored on failure")
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, created.ID)
			assert.Equal(t, tc.userID, created.UserID)
			assert.Equal(t, tc.input.IsDefault, created.IsDefault)
			assert.Contains(t, repo.addresses, created.ID)
		})
	}
}

func TestAddressService_SetDefault_ClearsBeforeMarking(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAddressRepo()
	s := newAddressService(repo)

	created, err := s.CreateAddress(ctx, "user-1", validInput(false))
	require.NoError(t, err)

	repo.calls = nil
	_, err = s.SetDefault(ctx, "user-1", created.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"GetAddress", "ClearDefault", "MarkDefault"}, repo.calls)
}

func TestAddressService_SetDefault_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAddressRepo()
	s := newAddressService(repo)

	// an address owned by someone else must be indistinguishable from
	// a missing one
	foreign, err := s.CreateAddress(ctx, "user-2", validInput(false))
	require.NoError(t, err)

	_, err = s.SetDefault(ctx, "user-1", foreign.ID)
	assert.ErrorIs(t, err, entities.ErrAddressNotFound)

	_, err = s.SetDefault(ctx, "user-1", "does-not-exist")
	assert.ErrorIs(t, err, entities.ErrAddressNotFound)

	_, err = s.SetDefault(ctx, "", foreign.ID)
	assert.ErrorIs(t, err, entities.ErrNoIdentity)
}

func TestAddressService_DeleteAddress(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAddressRepo()
	s := newAddressService(repo)

	created, err := s.CreateAddress(ctx, "user-1", validInput(false))
	require.NoError(t, err)

	foreign, err := s.CreateAddress(ctx, "user-2", validInput(false))
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteAddress(ctx, "user-1", foreign.ID), entities.ErrAddressNotFound)
	assert.ErrorIs(t, s.DeleteAddress(ctx, "", created.ID), entities.ErrNoIdentity)

	require.NoError(t, s.DeleteAddress(ctx, "user-1", created.ID))
	assert.NotContains(t, repo.addresses, created.ID)

	assert.ErrorIs(t, s.DeleteAddress(ctx, "user-1", created.ID), entities.ErrAddressNotFound)
}

func TestAddressService_ListAddresses(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAddressRepo()
	s := newAddressService(repo)

	_, err := s.ListAddresses(ctx, "")
	assert.ErrorIs(t, err, entities.ErrNoIdentity)

	created, err := s.CreateAddress(ctx, "user-1", validInput(true))
	require.NoError(t, err)
	_, err = s.CreateAddress(ctx, "user-2", validInput(false))
	require.NoError(t, err)

	addresses, err := s.ListAddresses(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	assert.Equal(t, created.ID, addresses[0].ID)
}
