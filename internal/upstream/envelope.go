package upstream

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/huihutong/passd/internal/domain/model"
)

// The upstream speaks two envelope dialects: the auth endpoint wraps
// payloads in a bare {data:...} object, everything else uses a full
// {success,message,code,data/result,timestamp} envelope where code==200
// is the only success signal. The success flag is advisory and ignored.

const envelopeOKCode = 200

type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
}

type qrcodeResponse struct {
	Data string `json:"data"`
}

type profileResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Code      int           `json:"code"`
	Data      model.Profile `json:"data"`
	Timestamp int64         `json:"timestamp"`
	RequestID string        `json:"requestId"`
}

type loginInfoResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Code      int              `json:"code"`
	Data      *model.LoginInfo `json:"data"`
	Timestamp int64            `json:"timestamp"`
	RequestID string           `json:"requestId"`
}

// directoryEntry is the row shape shared by listBuilding, listFloor and
// listRoom; each call populates the fields for its own level.
type directoryEntry struct {
	ApartmentID   string `json:"apartmentId"`
	ApartmentName string `json:"apartmentName"`
	BuildingID    string `json:"buildingId"`
	BuildingName  string `json:"buildingName"`
	FloorID       string `json:"floorId"`
	FloorName     string `json:"floorName"`
	RoomID        string `json:"roomId"`
	RoomName      string `json:"roomName"`
}

type directoryResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	Code      int              `json:"code"`
	Result    []directoryEntry `json:"result"`
	Timestamp int64            `json:"timestamp"`
}

// balanceResponse carries the room balance in result, observed as both a
// JSON number and a quoted string depending on backend version.
type balanceResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Code      int        `json:"code"`
	Result    flexNumber `json:"result"`
	Timestamp int64      `json:"timestamp"`
}

// flexNumber decodes a JSON number that may arrive quoted.
type flexNumber struct {
	raw string
}

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	var asNumber json.Number
	if err := json.Unmarshal(b, &asNumber); err == nil {
		n.raw = asNumber.String()
		return nil
	}
	var asString string
	if err := json.Unmarshal(b, &asString); err != nil {
		return err
	}
	n.raw = strings.TrimSpace(asString)
	return nil
}

func (n flexNumber) String() string { return n.raw }

func (n flexNumber) Float64() (float64, error) {
	return strconv.ParseFloat(n.raw, 64)
}
