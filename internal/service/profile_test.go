package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/huihutong/passd/internal/domain/model"
	"github.com/huihutong/passd/internal/mocks"
	"github.com/huihutong/passd/internal/store"
	"github.com/huihutong/passd/internal/upstream"
)

func newProfileFixture(t *testing.T) (*ProfileService, *mocks.MockProfileAPI, store.Store) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	api := mocks.NewMockProfileAPI(ctrl)
	st := store.NewMemory()
	svc, err := NewProfileService(ProfileServiceOptions{
		API:         api,
		Credentials: &fakeCreds{ensureToken: "tok-1"},
		Store:       st,
		Timeout:     time.Second,
	})
	require.NoError(t, err)
	return svc, api, st
}

func TestNewProfileService_RequiredDependencies(t *testing.T) {
	svc, err := NewProfileService(ProfileServiceOptions{})
	require.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "ProfileAPI is required")
}

func TestProfileService_Refresh_CachesBoth(t *testing.T) {
	svc, api, _ := newProfileFixture(t)

	api.EXPECT().
		MakeCodeInfo(gomock.Any(), "tok-1").
		Return(model.Profile{Name: "张三", Apartment: "文星学生公寓"}, nil)
	api.EXPECT().
		LoginInfo(gomock.Any(), "tok-1").
		Return(model.LoginInfo{ID: "u-1", Name: "张三", Sex: "1"}, nil)

	svc.Refresh(context.Background(), "open-1")

	profile, err := svc.CachedProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "张三", profile.Name)

	info, err := svc.CachedLoginInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", info.ID)
}

func TestProfileService_Refresh_FailuresAreSilent(t *testing.T) {
	svc, api, _ := newProfileFixture(t)

	api.EXPECT().
		MakeCodeInfo(gomock.Any(), "tok-1").
		Return(model.Profile{}, &upstream.TimeoutError{Endpoint: "/pms/welcome/make-code-info"})
	api.EXPECT().
		LoginInfo(gomock.Any(), "tok-1").
		Return(model.LoginInfo{}, &upstream.ServerError{Endpoint: "/pms/welcome/login-info", Status: 500})

	// Must not panic or surface anything; enrichment is best-effort.
	svc.Refresh(context.Background(), "open-1")

	_, err := svc.CachedProfile(context.Background())
	assert.ErrorIs(t, err, ErrNoCachedProfile)
}

func TestProfileService_Refresh_PartialFailureKeepsOldCache(t *testing.T) {
	svc, api, _ := newProfileFixture(t)
	ctx := context.Background()

	api.EXPECT().MakeCodeInfo(gomock.Any(), "tok-1").Return(model.Profile{Name: "张三"}, nil)
	api.EXPECT().LoginInfo(gomock.Any(), "tok-1").Return(model.LoginInfo{ID: "u-1"}, nil)
	svc.Refresh(ctx, "open-1")

	// Second refresh: summary fails, login info succeeds with new data.
	api.EXPECT().
		MakeCodeInfo(gomock.Any(), "tok-1").
		Return(model.Profile{}, &upstream.TransportError{Endpoint: "/x"})
	api.EXPECT().LoginInfo(gomock.Any(), "tok-1").Return(model.LoginInfo{ID: "u-1", Phone: "138"}, nil)
	svc.Refresh(ctx, "open-1")

	profile, err := svc.CachedProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "张三", profile.Name, "failed refresh leaves the old blob")

	info, err := svc.CachedLoginInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "138", info.Phone)
}

func TestProfileService_CachedProfile_Empty(t *testing.T) {
	svc, _, _ := newProfileFixture(t)

	_, err := svc.CachedProfile(context.Background())
	assert.ErrorIs(t, err, ErrNoCachedProfile)

	_, err = svc.CachedLoginInfo(context.Background())
	assert.ErrorIs(t, err, ErrNoCachedProfile)
}
