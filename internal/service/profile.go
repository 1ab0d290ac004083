package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/huihutong/passd/internal/domain/model"
	"github.com/huihutong/passd/internal/store"
)

// DefaultProfileTimeout bounds the opportunistic profile refresh so it
// can never hold up the artifact path.
const DefaultProfileTimeout = 5 * time.Second

// ErrNoCachedProfile is returned when no profile has been fetched yet.
var ErrNoCachedProfile = errors.New("no cached profile")

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	API         ProfileAPI         // Required: profile endpoints
	Credentials CredentialProvider // Required: session credential source
	Store       store.Store        // Required: profile cache persistence
	Timeout     time.Duration      // Optional: refresh bound, defaults to DefaultProfileTimeout
	Logger      *slog.Logger       // Optional: structured logger
}

// ProfileService keeps the cached profile fields fresh. Refreshes are
// best-effort enrichment: failures are logged at debug level and
// swallowed, never surfaced as an error state.
type ProfileService struct {
	api     ProfileAPI
	creds   CredentialProvider
	store   store.Store
	timeout time.Duration
	logger  *slog.Logger
}

// NewProfileService validates dependencies and builds the service.
func NewProfileService(opts ProfileServiceOptions) (*ProfileService, error) {
	if opts.API == nil {
		return nil, errors.New("ProfileAPI is required")
	}
	if opts.Credentials == nil {
		return nil, errors.New("CredentialProvider is required")
	}
	if opts.Store == nil {
		return nil, errors.New("Store is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultProfileTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		api:     opts.API,
		creds:   opts.Credentials,
		store:   opts.Store,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Refresh fetches the profile summary and extended login info and
// persists both as JSON blobs. Each fetch gets its own bounded deadline;
// either failing leaves any previously cached blob untouched.
func (s *ProfileService) Refresh(ctx context.Context, openID string) {
	s.refreshSummary(ctx, openID)
	s.refreshLoginInfo(ctx, openID)
}

func (s *ProfileService) refreshSummary(ctx context.Context, openID string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	profile, err := FetchWithRepair(ctx, s.creds, openID,
		func(ctx context.Context, satoken string) (model.Profile, error) {
			return s.api.MakeCodeInfo(ctx, satoken)
		})
	if err != nil {
		s.logger.DebugContext(ctx, "profile summary refresh skipped", "error", err)
		return
	}

	blob, err := json.Marshal(profile)
	if err != nil {
		s.logger.DebugContext(ctx, "profile summary encode failed", "error", err)
		return
	}
	if err := s.store.Update(ctx, func(settings *store.Settings) error {
		settings.ProfileJSON = string(blob)
		return nil
	}); err != nil {
		s.logger.DebugContext(ctx, "profile summary persist failed", "error", err)
	}
}

func (s *ProfileService) refreshLoginInfo(ctx context.Context, openID string) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	info, err := FetchWithRepair(ctx, s.creds, openID,
		func(ctx context.Context, satoken string) (model.LoginInfo, error) {
			return s.api.LoginInfo(ctx, satoken)
		})
	if err != nil {
		s.logger.DebugContext(ctx, "login info refresh skipped", "error", err)
		return
	}

	blob, err := json.Marshal(info)
	if err != nil {
		s.logger.DebugContext(ctx, "login info encode failed", "error", err)
		return
	}
	if err := s.store.Update(ctx, func(settings *store.Settings) error {
		settings.LoginInfoJSON = string(blob)
		return nil
	}); err != nil {
		s.logger.DebugContext(ctx, "login info persist failed", "error", err)
	}
}

// CachedProfile returns the last persisted profile summary for offline
// display before the first successful refresh.
func (s *ProfileService) CachedProfile(ctx context.Context) (model.Profile, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return model.Profile{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.ProfileJSON == "" {
		return model.Profile{}, ErrNoCachedProfile
	}
	var profile model.Profile
	if err := json.Unmarshal([]byte(settings.ProfileJSON), &profile); err != nil {
		return model.Profile{}, fmt.Errorf("unmarshal cached profile: %w", err)
	}
	return profile, nil
}

// CachedLoginInfo returns the last persisted extended login info.
func (s *ProfileService) CachedLoginInfo(ctx context.Context) (model.LoginInfo, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return model.LoginInfo{}, fmt.Errorf("load settings: %w", err)
	}
	if settings.LoginInfoJSON == "" {
		return model.LoginInfo{}, ErrNoCachedProfile
	}
	var info model.LoginInfo
	if err := json.Unmarshal([]byte(settings.LoginInfoJSON), &info); err != nil {
		return model.LoginInfo{}, fmt.Errorf("unmarshal cached login info: %w", err)
	}
	return info, nil
}
