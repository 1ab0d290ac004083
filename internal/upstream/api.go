package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/huihutong/passd/internal/domain/model"
)

const (
	pathCertificateLogin = "/web-app/auth/certificateLogin"
	pathMakeQRCode       = "/pms/welcome/make-qrcode"
	pathMakeCodeInfo     = "/pms/welcome/make-code-info"
	pathLoginInfo        = "/pms/welcome/login-info"
	pathListBuilding     = "/proxy/qy/sdcz/listBuilding"
	pathListFloor        = "/proxy/qy/sdcz/listFloor"
	pathListRoom         = "/proxy/qy/sdcz/listRoom"
	pathRoomBalance      = "/proxy/qy/sdcz/getRoomBalance"
)

// CertificateLogin exchanges a durable OpenID for a short-lived satoken.
func (c *Client) CertificateLogin(ctx context.Context, openID string) (string, error) {
	query := url.Values{"openId": {openID}}

	var resp loginResponse
	if err := c.get(ctx, pathCertificateLogin, query, "", &resp); err != nil {
		return "", err
	}
	if resp.Data.Token == "" {
		return "", &ApplicationError{
			Endpoint: pathCertificateLogin,
			Message:  "login response contained no token",
		}
	}
	return resp.Data.Token, nil
}

// MakeQRCode fetches the current pass payload for the session.
func (c *Client) MakeQRCode(ctx context.Context, satoken string) (string, error) {
	var resp qrcodeResponse
	if err := c.get(ctx, pathMakeQRCode, nil, satoken, &resp); err != nil {
		return "", err
	}
	if resp.Data == "" {
		return "", &ApplicationError{
			Endpoint: pathMakeQRCode,
			Message:  "qrcode response contained no payload",
		}
	}
	return resp.Data, nil
}

// MakeCodeInfo fetches the profile summary shown beside the pass.
func (c *Client) MakeCodeInfo(ctx context.Context, satoken string) (model.Profile, error) {
	var resp profileResponse
	if err := c.get(ctx, pathMakeCodeInfo, nil, satoken, &resp); err != nil {
		return model.Profile{}, err
	}
	if resp.Code != envelopeOKCode {
		return model.Profile{}, &ApplicationError{
			Endpoint: pathMakeCodeInfo, Code: resp.Code, Message: resp.Message,
		}
	}
	return resp.Data, nil
}

// LoginInfo fetches the extended account record. The endpoint signals
// failure through the envelope even on HTTP 200: code != 200 or a null
// data object is a hard error for the call.
func (c *Client) LoginInfo(ctx context.Context, satoken string) (model.LoginInfo, error) {
	var resp loginInfoResponse
	if err := c.get(ctx, pathLoginInfo, nil, satoken, &resp); err != nil {
		return model.LoginInfo{}, err
	}
	if resp.Code != envelopeOKCode || resp.Data == nil {
		return model.LoginInfo{}, &ApplicationError{
			Endpoint: pathLoginInfo, Code: resp.Code, Message: resp.Message,
		}
	}
	return *resp.Data, nil
}

// DirectoryQuery scopes a directory listing. ApartmentID is always
// required; deeper levels add their parent ids.
type DirectoryQuery struct {
	ApartmentID int
	BuildingID  string
	FloorID     string
}

func (q DirectoryQuery) values() url.Values {
	return url.Values{
		"apartmentId": {strconv.Itoa(q.ApartmentID)},
		"buildingId":  {q.BuildingID},
		"floorId":     {q.FloorID},
		"roomId":      {""},
	}
}

// ListBuildings lists the buildings of an apartment category.
func (c *Client) ListBuildings(ctx context.Context, satoken string, q DirectoryQuery) ([]model.DirectoryNode, error) {
	return c.listDirectory(ctx, satoken, pathListBuilding, q, model.NodeKindBuilding)
}

// ListFloors lists the floors of a building.
func (c *Client) ListFloors(ctx context.Context, satoken string, q DirectoryQuery) ([]model.DirectoryNode, error) {
	return c.listDirectory(ctx, satoken, pathListFloor, q, model.NodeKindFloor)
}

// ListRooms lists the rooms of a floor.
func (c *Client) ListRooms(ctx context.Context, satoken string, q DirectoryQuery) ([]model.DirectoryNode, error) {
	return c.listDirectory(ctx, satoken, pathListRoom, q, model.NodeKindRoom)
}

func (c *Client) listDirectory(ctx context.Context, satoken, path string, q DirectoryQuery, kind model.NodeKind) ([]model.DirectoryNode, error) {
	var resp directoryResponse
	if err := c.get(ctx, path, q.values(), satoken, &resp); err != nil {
		return nil, err
	}
	if resp.Code != envelopeOKCode {
		return nil, &ApplicationError{Endpoint: path, Code: resp.Code, Message: resp.Message}
	}

	nodes := make([]model.DirectoryNode, 0, len(resp.Result))
	for _, entry := range resp.Result {
		nodes = append(nodes, entryToNode(entry, q, kind))
	}
	return nodes, nil
}

func entryToNode(entry directoryEntry, q DirectoryQuery, kind model.NodeKind) model.DirectoryNode {
	node := model.DirectoryNode{
		Kind:        kind,
		ApartmentID: q.ApartmentID,
		BuildingID:  q.BuildingID,
		FloorID:     q.FloorID,
	}
	switch kind {
	case model.NodeKindBuilding:
		node.ID, node.Name = entry.BuildingID, entry.BuildingName
	case model.NodeKindFloor:
		node.ID, node.Name = entry.FloorID, entry.FloorName
		node.BuildingID = entry.BuildingID
	case model.NodeKindRoom:
		node.ID, node.Name = entry.RoomID, entry.RoomName
		node.BuildingID = entry.BuildingID
		node.FloorID = entry.FloorID
	}
	return node
}

// RoomBalance fetches the utility balance for a room. The result field
// arrives as either a JSON number or a quoted string.
func (c *Client) RoomBalance(ctx context.Context, satoken string, apartmentID int, roomID string) (float64, error) {
	query := url.Values{
		"apartmentId": {strconv.Itoa(apartmentID)},
		"roomId":      {roomID},
	}

	var resp balanceResponse
	if err := c.get(ctx, pathRoomBalance, query, satoken, &resp); err != nil {
		return 0, err
	}
	if resp.Code != envelopeOKCode {
		return 0, &ApplicationError{Endpoint: pathRoomBalance, Code: resp.Code, Message: resp.Message}
	}

	balance, err := resp.Result.Float64()
	if err != nil {
		return 0, &DecodeError{
			Endpoint: pathRoomBalance,
			RawBody:  resp.Result.String(),
			Err:      err,
		}
	}
	return balance, nil
}
