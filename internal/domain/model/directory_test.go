package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeNodes(t *testing.T) {
	nodes := []DirectoryNode{
		{Kind: NodeKindRoom, ID: "r1", Name: "101"},
		{Kind: NodeKindRoom, ID: "r2", Name: "101"}, // same name, distinct id
		{Kind: NodeKindRoom, ID: "r1", Name: "101-dup"},
		{Kind: NodeKindRoom, ID: "r3", Name: "102"},
	}

	out := DedupeNodes(nodes)

	assert.Len(t, out, 3)
	assert.Equal(t, "r1", out[0].ID)
	assert.Equal(t, "101", out[0].Name) // first occurrence wins
	assert.Equal(t, "r2", out[1].ID)
	assert.Equal(t, "r3", out[2].ID)
}

func TestDedupeNodes_Empty(t *testing.T) {
	assert.Empty(t, DedupeNodes(nil))
	assert.Empty(t, DedupeNodes([]DirectoryNode{}))
}

func TestApartmentCategory_Valid(t *testing.T) {
	for _, c := range ApartmentCategories() {
		assert.True(t, c.Valid(), "category %d", c)
		assert.NotEmpty(t, c.Name(), "category %d", c)
	}

	assert.False(t, ApartmentCategory(0).Valid())
	assert.False(t, ApartmentCategory(6).Valid())
	assert.Empty(t, ApartmentCategory(6).Name())
}

func TestDirectorySelection_Cascade(t *testing.T) {
	var s DirectorySelection
	s.SelectApartment(ApartmentWenxing)
	s.SelectBuilding("b1", "1号楼")
	s.SelectFloor("f1", "3层")
	s.SelectRoom("r1", "301")

	assert.Equal(t, 1, s.ApartmentID)
	assert.Equal(t, "文星学生公寓", s.ApartmentName)
	assert.Equal(t, "r1", s.RoomID)

	// Re-selecting a floor clears only the room.
	s.SelectFloor("f2", "4层")
	assert.Equal(t, "b1", s.BuildingID)
	assert.Equal(t, "f2", s.FloorID)
	assert.Empty(t, s.RoomID)
	assert.Empty(t, s.RoomName)

	// Re-selecting a building clears floor and room.
	s.SelectRoom("r9", "401")
	s.SelectBuilding("b2", "2号楼")
	assert.Empty(t, s.FloorID)
	assert.Empty(t, s.RoomID)

	// Re-selecting the apartment clears everything below it.
	s.SelectFloor("f3", "1层")
	s.SelectApartment(ApartmentWenhui)
	assert.Equal(t, 2, s.ApartmentID)
	assert.Empty(t, s.BuildingID)
	assert.Empty(t, s.BuildingName)
	assert.Empty(t, s.FloorID)
	assert.Empty(t, s.RoomID)
}

func TestSexDisplay(t *testing.T) {
	assert.Equal(t, "男", SexDisplay("1"))
	assert.Equal(t, "女", SexDisplay("0"))
	assert.Equal(t, "unknown", SexDisplay("unknown"))
	assert.Empty(t, SexDisplay(""))
}
