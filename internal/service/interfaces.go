// Package service holds the business logic of the pass agent: credential
// management, directory and balance lookups, and profile caching.
// Services depend on narrow consumer interfaces, never on concrete
// adapters.
package service

import (
	"context"

	"github.com/huihutong/passd/internal/domain/model"
	"github.com/huihutong/passd/internal/upstream"
)

// TokenExchanger exchanges a durable OpenID for a session credential.
type TokenExchanger interface {
	CertificateLogin(ctx context.Context, openID string) (string, error)
}

// DirectoryAPI is the upstream surface the directory service consumes.
type DirectoryAPI interface {
	ListBuildings(ctx context.Context, satoken string, q upstream.DirectoryQuery) ([]model.DirectoryNode, error)
	ListFloors(ctx context.Context, satoken string, q upstream.DirectoryQuery) ([]model.DirectoryNode, error)
	ListRooms(ctx context.Context, satoken string, q upstream.DirectoryQuery) ([]model.DirectoryNode, error)
	RoomBalance(ctx context.Context, satoken string, apartmentID int, roomID string) (float64, error)
}

// ProfileAPI is the upstream surface the profile service consumes.
type ProfileAPI interface {
	MakeCodeInfo(ctx context.Context, satoken string) (model.Profile, error)
	LoginInfo(ctx context.Context, satoken string) (model.LoginInfo, error)
}

// CredentialProvider is what callers of the session-repair helper need
// from the credential manager.
type CredentialProvider interface {
	EnsureCredential(ctx context.Context, openID string) (string, error)
	HandleAuthFailure(ctx context.Context, openID string) (string, error)
}
