package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/huihutong/passd/internal/mocks"
	"github.com/huihutong/passd/internal/store"
	"github.com/huihutong/passd/internal/upstream"
)

func newTestCredentialService(t *testing.T, exchanger TokenExchanger, st store.Store) *CredentialService {
	t.Helper()
	svc, err := NewCredentialService(CredentialServiceOptions{
		Exchanger: exchanger,
		Store:     st,
	})
	require.NoError(t, err)
	return svc
}

func TestNewCredentialService_RequiredDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, err := NewCredentialService(CredentialServiceOptions{Store: store.NewMemory()})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "TokenExchanger is required")

	svc, err = NewCredentialService(CredentialServiceOptions{
		Exchanger: mocks.NewMockTokenExchanger(ctrl),
	})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "Store is required")
}

func TestCredentialService_EnsureCredential_NoIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestCredentialService(t, mocks.NewMockTokenExchanger(ctrl), store.NewMemory())

	_, err := svc.EnsureCredential(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, err = svc.EnsureCredential(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestCredentialService_EnsureCredential_ExchangesAndCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExchanger := mocks.NewMockTokenExchanger(ctrl)
	mockExchanger.EXPECT().
		CertificateLogin(gomock.Any(), "open-1").
		Return("tok-1", nil).
		Times(1)

	st := store.NewMemory()
	svc := newTestCredentialService(t, mockExchanger, st)
	ctx := context.Background()

	token, err := svc.EnsureCredential(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Second call hits the cache; the Times(1) above enforces it.
	token, err = svc.EnsureCredential(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	settings, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "open-1", settings.OpenID)
	assert.Equal(t, "tok-1", settings.Satoken)
}

func TestCredentialService_EnsureCredential_IdentityChangeForcesExchange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExchanger := mocks.NewMockTokenExchanger(ctrl)
	mockExchanger.EXPECT().CertificateLogin(gomock.Any(), "open-1").Return("tok-1", nil)
	mockExchanger.EXPECT().CertificateLogin(gomock.Any(), "open-2").Return("tok-2", nil)

	svc := newTestCredentialService(t, mockExchanger, store.NewMemory())
	ctx := context.Background()

	_, err := svc.EnsureCredential(ctx, "open-1")
	require.NoError(t, err)

	// A cached satoken never satisfies a different OpenID.
	token, err := svc.EnsureCredential(ctx, "open-2")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestCredentialService_EnsureCredential_ExchangeFailureLeavesNothingCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exchangeErr := &upstream.TransportError{Endpoint: "/web-app/auth/certificateLogin", Err: errors.New("refused")}
	mockExchanger := mocks.NewMockTokenExchanger(ctrl)
	mockExchanger.EXPECT().CertificateLogin(gomock.Any(), "open-1").Return("", exchangeErr)

	st := store.NewMemory()
	svc := newTestCredentialService(t, mockExchanger, st)

	_, err := svc.EnsureCredential(context.Background(), "open-1")
	require.ErrorIs(t, err, exchangeErr)

	settings, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, settings.Satoken)
}

func TestCredentialService_HandleAuthFailure_ClearsThenExchangesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockExchanger := mocks.NewMockTokenExchanger(ctrl)
	mockExchanger.EXPECT().
		CertificateLogin(gomock.Any(), "open-1").
		Return("tok-new", nil).
		Times(1)

	st := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Update(ctx, func(s *store.Settings) error {
		s.OpenID = "open-1"
		s.Satoken = "tok-stale"
		return nil
	}))

	svc := newTestCredentialService(t, mockExchanger, st)

	token, err := svc.HandleAuthFailure(ctx, "open-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-new", token)

	settings, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-new", settings.Satoken)
}

func TestCredentialService_HandleAuthFailure_ExchangeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	exchangeErr := &upstream.ServerError{Endpoint: "/web-app/auth/certificateLogin", Status: 500}
	mockExchanger := mocks.NewMockTokenExchanger(ctrl)
	mockExchanger.EXPECT().CertificateLogin(gomock.Any(), "open-1").Return("", exchangeErr)

	st := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Update(ctx, func(s *store.Settings) error {
		s.OpenID = "open-1"
		s.Satoken = "tok-stale"
		return nil
	}))

	svc := newTestCredentialService(t, mockExchanger, st)

	_, err := svc.HandleAuthFailure(ctx, "open-1")
	require.ErrorIs(t, err, exchangeErr)

	// The stale credential is gone even though the exchange failed; the
	// next attempt starts from a clean slate.
	settings, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings.Satoken)
}

func TestCredentialService_SetIdentityToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Update(ctx, func(s *store.Settings) error {
		s.OpenID = "open-old"
		s.Satoken = "tok-old"
		return nil
	}))

	svc := newTestCredentialService(t, mocks.NewMockTokenExchanger(ctrl), st)

	require.NoError(t, svc.SetIdentityToken(ctx, "open-new"))

	settings, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "open-new", settings.OpenID)
	assert.Empty(t, settings.Satoken, "satoken never outlives its identity")

	assert.ErrorIs(t, svc.SetIdentityToken(ctx, "  "), ErrNoIdentity)
}

func TestCredentialService_ConcurrentExchangesCoalesce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entered := make(chan struct{})
	release := make(chan struct{})
	mockExchanger := mocks.NewMockTokenExchanger(ctrl)
	mockExchanger.EXPECT().
		CertificateLogin(gomock.Any(), "open-1").
		DoAndReturn(func(context.Context, string) (string, error) {
			close(entered)
			<-release
			return "tok-1", nil
		}).
		Times(1)

	svc := newTestCredentialService(t, mockExchanger, store.NewMemory())
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)

	// First caller parks inside the exchange.
	wg.Add(1)
	go func() {
		defer wg.Done()
		tokens[0], errs[0] = svc.EnsureCredential(ctx, "open-1")
	}()
	<-entered

	// The rest pile onto the in-flight exchange instead of starting
	// their own; the Times(1) above enforces it.
	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = svc.EnsureCredential(ctx, "open-1")
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "tok-1", tokens[i])
	}
}
