package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/huihutong/passd/internal/domain/model"
	"github.com/huihutong/passd/internal/store"
	"github.com/huihutong/passd/internal/upstream"
	"github.com/huihutong/passd/internal/util"
)

// DirectoryServiceOptions groups dependencies for DirectoryService.
type DirectoryServiceOptions struct {
	API         DirectoryAPI       // Required: upstream directory endpoints
	Credentials CredentialProvider // Required: session credential source
	Store       store.Store        // Required: selection persistence
}

// DirectoryService resolves the building→floor→room cascade and the
// room balance. It owns no retry policy beyond the shared one-shot
// session repair; classified upstream errors surface to the caller.
type DirectoryService struct {
	api    DirectoryAPI
	creds  CredentialProvider
	store  store.Store
	logger *slog.Logger
}

// NewDirectoryService validates dependencies and builds the service.
func NewDirectoryService(opts DirectoryServiceOptions) (*DirectoryService, error) {
	if opts.API == nil {
		return nil, errors.New("DirectoryAPI is required")
	}
	if opts.Credentials == nil {
		return nil, errors.New("CredentialProvider is required")
	}
	if opts.Store == nil {
		return nil, errors.New("Store is required")
	}
	return &DirectoryService{
		api:    opts.API,
		creds:  opts.Credentials,
		store:  opts.Store,
		logger: slog.Default(),
	}, nil
}

func (s *DirectoryService) openID(ctx context.Context) (string, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	if settings.OpenID == "" {
		return "", ErrNoIdentity
	}
	return settings.OpenID, nil
}

// ListBuildings lists the buildings of an apartment category,
// de-duplicated by id.
func (s *DirectoryService) ListBuildings(ctx context.Context, category model.ApartmentCategory) ([]model.DirectoryNode, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown apartment category %d", category)
	}
	return s.list(ctx, upstream.DirectoryQuery{ApartmentID: int(category)}, s.api.ListBuildings)
}

// ListFloors lists the floors of a building, de-duplicated by id.
func (s *DirectoryService) ListFloors(ctx context.Context, category model.ApartmentCategory, buildingID string) ([]model.DirectoryNode, error) {
	if buildingID == "" {
		return nil, errors.New("building id is required")
	}
	return s.list(ctx, upstream.DirectoryQuery{ApartmentID: int(category), BuildingID: buildingID}, s.api.ListFloors)
}

// ListRooms lists the rooms of a floor, de-duplicated by id.
func (s *DirectoryService) ListRooms(ctx context.Context, category model.ApartmentCategory, buildingID, floorID string) ([]model.DirectoryNode, error) {
	if buildingID == "" || floorID == "" {
		return nil, errors.New("building and floor ids are required")
	}
	q := upstream.DirectoryQuery{ApartmentID: int(category), BuildingID: buildingID, FloorID: floorID}
	return s.list(ctx, q, s.api.ListRooms)
}

func (s *DirectoryService) list(
	ctx context.Context,
	q upstream.DirectoryQuery,
	call func(ctx context.Context, satoken string, q upstream.DirectoryQuery) ([]model.DirectoryNode, error),
) ([]model.DirectoryNode, error) {
	openID, err := s.openID(ctx)
	if err != nil {
		return nil, err
	}
	nodes, err := FetchWithRepair(ctx, s.creds, openID,
		func(ctx context.Context, satoken string) ([]model.DirectoryNode, error) {
			return call(ctx, satoken, q)
		})
	if err != nil {
		return nil, err
	}
	return model.DedupeNodes(nodes), nil
}

// QueryBalance fetches the utility balance for a room, formatted with
// exactly two decimal digits.
func (s *DirectoryService) QueryBalance(ctx context.Context, category model.ApartmentCategory, roomID string) (string, error) {
	if roomID == "" {
		return "", errors.New("room id is required")
	}
	openID, err := s.openID(ctx)
	if err != nil {
		return "", err
	}

	balance, err := FetchWithRepair(ctx, s.creds, openID,
		func(ctx context.Context, satoken string) (float64, error) {
			return s.api.RoomBalance(ctx, satoken, int(category), roomID)
		})
	if err != nil {
		return "", err
	}
	return util.FormatBalance(balance), nil
}

// Selection returns the persisted directory selection.
func (s *DirectoryService) Selection(ctx context.Context) (model.DirectorySelection, error) {
	settings, err := s.store.Load(ctx)
	if err != nil {
		return model.DirectorySelection{}, fmt.Errorf("load settings: %w", err)
	}
	return settings.Selection, nil
}

// SelectApartment persists an apartment selection, clearing building,
// floor and room.
func (s *DirectoryService) SelectApartment(ctx context.Context, category model.ApartmentCategory) error {
	if !category.Valid() {
		return fmt.Errorf("unknown apartment category %d", category)
	}
	return s.store.Update(ctx, func(settings *store.Settings) error {
		settings.Selection.SelectApartment(category)
		return nil
	})
}

// SelectBuilding persists a building selection, clearing floor and room.
func (s *DirectoryService) SelectBuilding(ctx context.Context, id, name string) error {
	return s.store.Update(ctx, func(settings *store.Settings) error {
		settings.Selection.SelectBuilding(id, name)
		return nil
	})
}

// SelectFloor persists a floor selection, clearing the room.
func (s *DirectoryService) SelectFloor(ctx context.Context, id, name string) error {
	return s.store.Update(ctx, func(settings *store.Settings) error {
		settings.Selection.SelectFloor(id, name)
		return nil
	})
}

// SelectRoom persists a room selection.
func (s *DirectoryService) SelectRoom(ctx context.Context, id, name string) error {
	return s.store.Update(ctx, func(settings *store.Settings) error {
		settings.Selection.SelectRoom(id, name)
		return nil
	})
}
