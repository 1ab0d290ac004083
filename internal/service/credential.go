package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/huihutong/passd/internal/store"
)

// ErrNoIdentity is returned when no OpenID has been configured yet.
var ErrNoIdentity = errors.New("no identity token configured")

// CredentialServiceOptions groups dependencies for CredentialService.
type CredentialServiceOptions struct {
	Exchanger TokenExchanger // Required: upstream login endpoint
	Store     store.Store    // Required: settings persistence
	Logger    *slog.Logger   // Optional: structured logger
}

// CredentialService owns the OpenID → satoken exchange. The satoken is
// cached in the settings store and treated as valid until an
// authenticated call says otherwise; validation cost is deferred to the
// artifact fetch. Safe for concurrent use: concurrent callers needing an
// exchange for the same OpenID share a single in-flight request.
type CredentialService struct {
	exchanger TokenExchanger
	store     store.Store
	logger    *slog.Logger
	group     singleflight.Group
}

// NewCredentialService validates dependencies and builds the service.
func NewCredentialService(opts CredentialServiceOptions) (*CredentialService, error) {
	if opts.Exchanger == nil {
		return nil, errors.New("TokenExchanger is required")
	}
	if opts.Store == nil {
		return nil, errors.New("Store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialService{
		exchanger: opts.Exchanger,
		store:     opts.Store,
		logger:    logger,
	}, nil
}

// EnsureCredential returns a usable satoken for openID, exchanging only
// when no cached credential exists.
func (s *CredentialService) EnsureCredential(ctx context.Context, openID string) (string, error) {
	openID = strings.TrimSpace(openID)
	if openID == "" {
		return "", ErrNoIdentity
	}

	settings, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	if settings.OpenID == openID && settings.Satoken != "" {
		return settings.Satoken, nil
	}

	return s.exchange(ctx, openID)
}

// HandleAuthFailure clears the cached credential and performs exactly
// one re-exchange. It never loops; repeated failure is the caller's
// problem to pace.
func (s *CredentialService) HandleAuthFailure(ctx context.Context, openID string) (string, error) {
	openID = strings.TrimSpace(openID)
	if openID == "" {
		return "", ErrNoIdentity
	}

	if err := s.store.Update(ctx, func(settings *store.Settings) error {
		settings.Satoken = ""
		return nil
	}); err != nil {
		return "", fmt.Errorf("clear credential: %w", err)
	}

	s.logger.InfoContext(ctx, "session credential rejected, re-exchanging")
	return s.exchange(ctx, openID)
}

// SetIdentityToken replaces the stored OpenID. The cached credential is
// cleared in the same store update; a satoken never outlives the
// identity it was exchanged for.
func (s *CredentialService) SetIdentityToken(ctx context.Context, openID string) error {
	openID = strings.TrimSpace(openID)
	if openID == "" {
		return ErrNoIdentity
	}

	return s.store.Update(ctx, func(settings *store.Settings) error {
		settings.OpenID = openID
		settings.Satoken = ""
		return nil
	})
}

// exchange performs the network exchange, coalescing concurrent callers
// through singleflight so a burst of triggers issues one request.
func (s *CredentialService) exchange(ctx context.Context, openID string) (string, error) {
	token, err, _ := s.group.Do(openID, func() (any, error) {
		satoken, err := s.exchanger.CertificateLogin(ctx, openID)
		if err != nil {
			return "", err
		}
		if err := s.store.Update(ctx, func(settings *store.Settings) error {
			settings.OpenID = openID
			settings.Satoken = satoken
			return nil
		}); err != nil {
			return "", fmt.Errorf("cache credential: %w", err)
		}
		return satoken, nil
	})
	if err != nil {
		return "", err
	}
	return token.(string), nil
}
