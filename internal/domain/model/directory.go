package model

// NodeKind identifies a level of the building→floor→room hierarchy.
type NodeKind string

const (
	NodeKindBuilding NodeKind = "building"
	NodeKindFloor    NodeKind = "floor"
	NodeKindRoom     NodeKind = "room"
)

// DirectoryNode is one entry of the three-level apartment directory.
// Sibling nodes may share a display name; identity is the ID.
type DirectoryNode struct {
	Kind NodeKind `json:"kind"`
	ID   string   `json:"id"`
	Name string   `json:"name"`

	// Parent links. A building carries only ApartmentID, a floor adds
	// BuildingID, a room adds FloorID.
	ApartmentID int    `json:"apartment_id"`
	BuildingID  string `json:"building_id,omitempty"`
	FloorID     string `json:"floor_id,omitempty"`
}

// DedupeNodes removes nodes whose ID was already seen, preserving order.
// The upstream directory endpoints return duplicate rows for rooms that
// appear under multiple wiring groups.
func DedupeNodes(nodes []DirectoryNode) []DirectoryNode {
	seen := make(map[string]struct{}, len(nodes))
	out := nodes[:0]
	for _, n := range nodes {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ApartmentCategory is one of the five fixed apartment groups the
// utility endpoints are partitioned by.
type ApartmentCategory int

const (
	ApartmentWenxing ApartmentCategory = 1
	ApartmentWenhui  ApartmentCategory = 2
	ApartmentWencui  ApartmentCategory = 3
	ApartmentWenhua  ApartmentCategory = 4
	ApartmentWenyuan ApartmentCategory = 5
)

// ApartmentCategories lists all selectable categories in display order.
func ApartmentCategories() []ApartmentCategory {
	return []ApartmentCategory{
		ApartmentWenxing, ApartmentWenhui, ApartmentWencui, ApartmentWenhua, ApartmentWenyuan,
	}
}

// Valid reports whether the category is one of the known five.
func (c ApartmentCategory) Valid() bool {
	return c >= ApartmentWenxing && c <= ApartmentWenyuan
}

// Name returns the display name used by the upstream service.
func (c ApartmentCategory) Name() string {
	switch c {
	case ApartmentWenxing:
		return "文星学生公寓"
	case ApartmentWenhui:
		return "文荟学生公寓"
	case ApartmentWencui:
		return "文萃学生公寓"
	case ApartmentWenhua:
		return "文华人才公寓"
	case ApartmentWenyuan:
		return "文缘学生公寓"
	default:
		return ""
	}
}

// DirectorySelection records the user's current position in the
// directory, persisted so the utility view can restore it.
type DirectorySelection struct {
	ApartmentID   int    `json:"apartment_id"`
	ApartmentName string `json:"apartment_name"`
	BuildingID    string `json:"building_id"`
	BuildingName  string `json:"building_name"`
	FloorID       string `json:"floor_id"`
	FloorName     string `json:"floor_name"`
	RoomID        string `json:"room_id"`
	RoomName      string `json:"room_name"`
}

// SelectApartment replaces the apartment and clears every deeper level.
func (s *DirectorySelection) SelectApartment(c ApartmentCategory) {
	s.ApartmentID = int(c)
	s.ApartmentName = c.Name()
	s.BuildingID, s.BuildingName = "", ""
	s.FloorID, s.FloorName = "", ""
	s.RoomID, s.RoomName = "", ""
}

// SelectBuilding replaces the building and clears floor and room.
func (s *DirectorySelection) SelectBuilding(id, name string) {
	s.BuildingID, s.BuildingName = id, name
	s.FloorID, s.FloorName = "", ""
	s.RoomID, s.RoomName = "", ""
}

// SelectFloor replaces the floor and clears the room.
func (s *DirectorySelection) SelectFloor(id, name string) {
	s.FloorID, s.FloorName = id, name
	s.RoomID, s.RoomName = "", ""
}

// SelectRoom replaces the room.
func (s *DirectorySelection) SelectRoom(id, name string) {
	s.RoomID, s.RoomName = id, name
}
