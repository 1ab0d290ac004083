package service

import (
	"context"

	"github.com/huihutong/passd/internal/upstream"
)

// FetchWithRepair runs an authenticated fetch, repairing the session
// once if the call fails in an auth-classified way: clear, re-exchange,
// retry the fetch a single time. Every authenticated flow (artifact
// polling, directory, balance, profile) shares this branch instead of
// re-implementing it.
func FetchWithRepair[T any](
	ctx context.Context,
	creds CredentialProvider,
	openID string,
	fetch func(ctx context.Context, satoken string) (T, error),
) (T, error) {
	var zero T

	satoken, err := creds.EnsureCredential(ctx, openID)
	if err != nil {
		return zero, err
	}

	out, err := fetch(ctx, satoken)
	if err == nil || !upstream.IsAuthFailure(err) {
		return out, err
	}

	satoken, repairErr := creds.HandleAuthFailure(ctx, openID)
	if repairErr != nil {
		return zero, repairErr
	}
	return fetch(ctx, satoken)
}
