package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingDomain "github.com/glambook/service-booking/internal/domain/booking"
	paymentDomain "github.com/glambook/service-booking/internal/domain/payment"
)

type fakeAuthRepo struct {
	records map[uuid.UUID]*paymentDomain.Authorization
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{records: make(map[uuid.UUID]*paymentDomain.Authorization)}
}

func (r *fakeAuthRepo) FindActiveByBookingID(_ context.Context, bookingID uuid.UUID) (*paymentDomain.Authorization, error) {
	for _, auth := range r.records {
		if auth.BookingID == bookingID && auth.Status == paymentDomain.AuthorizationAuthorized {
			return auth, nil
		}
	}
	return nil, nil
}

func (r *fakeAuthRepo) FindByTransactionID(_ context.Context, transactionID string) (*paymentDomain.Authorization, error) {
	for _, auth := range r.records {
		if auth.TransactionID == transactionID {
			return auth, nil
		}
	}
	return nil, nil
}

func (r *fakeAuthRepo) Save(_ context.Context, auth *paymentDomain.Authorization) error {
	r.records[auth.ID] = auth
	return nil
}

func (r *fakeAuthRepo) UpdateStatus(_ context.Context, id uuid.UUID, status paymentDomain.AuthorizationStatus) error {
	auth, ok := r.records[id]
	if !ok {
		return errors.New("authorization not found")
	}
	auth.Status = status
	return nil
}

type fakeProvider struct {
	authorizeCalls int
	voidCalls      int
	voidedTxns     []string
	result         AuthResult
	authorizeErr   error
	voidErr        error
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Authorize(_ context.Context, _ AuthorizeRequest) (AuthResult, error) {
	p.authorizeCalls++
	return p.result, p.authorizeErr
}

func (p *fakeProvider) Void(_ context.Context, transactionID string) error {
	p.voidCalls++
	p.voidedTxns = append(p.voidedTxns, transactionID)
	return p.voidErr
}

func testBooking(t *testing.T) *bookingDomain.Booking {
	t.Helper()
	now := time.Now().UTC()
	bk, err := bookingDomain.NewBooking(
		uuid.New(), uuid.New(), bookingDomain.ServiceBridal, "wedding",
		now.Add(72*time.Hour), 100000, "MYR", "", now,
	)
	require.NoError(t, err)
	return bk
}

func TestAuthorize_RecordsHold(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{result: AuthResult{TransactionID: "chrg_123", Authorized: true}}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Authorize(context.Background(), bk))

	assert.Equal(t, 1, provider.authorizeCalls)
	auth, err := repo.FindActiveByBookingID(context.Background(), bk.ID())
	require.NoError(t, err)
	require.NotNil(t, auth)
	assert.Equal(t, "chrg_123", auth.TransactionID)
	assert.Equal(t, "fake", auth.Provider)
	assert.Equal(t, int64(100000), auth.AmountCents)
}

func TestAuthorize_SecondCallIsNoOp(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{result: AuthResult{TransactionID: "chrg_123", Authorized: true}}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Authorize(context.Background(), bk))
	require.NoError(t, coord.Authorize(context.Background(), bk))

	assert.Equal(t, 1, provider.authorizeCalls)
	assert.Len(t, repo.records, 1)
}

func TestAuthorize_DeclinedIsRecordedNotReturned(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{result: AuthResult{TransactionID: "chrg_456", FailureReason: "insufficient funds"}}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Authorize(context.Background(), bk))

	// No active hold, but the failed attempt is on record.
	active, err := repo.FindActiveByBookingID(context.Background(), bk.ID())
	require.NoError(t, err)
	assert.Nil(t, active)

	require.Len(t, repo.records, 1)
	for _, auth := range repo.records {
		assert.Equal(t, paymentDomain.AuthorizationFailed, auth.Status)
		assert.Equal(t, "insufficient funds", auth.FailureReason)
	}
}

func TestAuthorize_ProviderErrorIsRecordedNotReturned(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{authorizeErr: errors.New("connection reset")}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Authorize(context.Background(), bk))

	require.Len(t, repo.records, 1)
	for _, auth := range repo.records {
		assert.Equal(t, paymentDomain.AuthorizationFailed, auth.Status)
		assert.Equal(t, "connection reset", auth.FailureReason)
	}
}

func TestVoid_ReleasesActiveHold(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{result: AuthResult{TransactionID: "chrg_789", Authorized: true}}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Authorize(context.Background(), bk))
	require.NoError(t, coord.Void(context.Background(), bk))

	assert.Equal(t, []string{"chrg_789"}, provider.voidedTxns)

	active, err := repo.FindActiveByBookingID(context.Background(), bk.ID())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestVoid_NoActiveHoldIsNoOp(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Void(context.Background(), bk))
	assert.Equal(t, 0, provider.voidCalls)
}

func TestVoid_ProviderErrorKeepsHoldActive(t *testing.T) {
	repo := newFakeAuthRepo()
	provider := &fakeProvider{
		result:  AuthResult{TransactionID: "chrg_999", Authorized: true},
		voidErr: errors.New("gateway timeout"),
	}
	coord := NewCoordinator(repo, provider, zap.NewNop())
	bk := testBooking(t)

	require.NoError(t, coord.Authorize(context.Background(), bk))
	require.Error(t, coord.Void(context.Background(), bk))

	// Hold stays authorized for a retry or provider-side reconciliation.
	active, err := repo.FindActiveByBookingID(context.Background(), bk.ID())
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, paymentDomain.AuthorizationAuthorized, active.Status)
}
