package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/huihutong/passd/internal/domain/model"
	"github.com/huihutong/passd/internal/service"
)

func apartmentFlag(fs *flag.FlagSet) *int {
	return fs.Int("apartment", 0, "apartment category id (1-5)")
}

func runBuildings(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("buildings", flag.ContinueOnError)
	apartment := apartmentFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	nodes, err := deps.Directory.ListBuildings(ctx.Ctx, model.ApartmentCategory(*apartment))
	if err != nil {
		return err
	}
	return printNodes(nodes)
}

func runFloors(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("floors", flag.ContinueOnError)
	apartment := apartmentFlag(fs)
	building := fs.String("building", "", "building id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	nodes, err := deps.Directory.ListFloors(ctx.Ctx, model.ApartmentCategory(*apartment), *building)
	if err != nil {
		return err
	}
	return printNodes(nodes)
}

func runRooms(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("rooms", flag.ContinueOnError)
	apartment := apartmentFlag(fs)
	building := fs.String("building", "", "building id")
	floor := fs.String("floor", "", "floor id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	nodes, err := deps.Directory.ListRooms(ctx.Ctx, model.ApartmentCategory(*apartment), *building, *floor)
	if err != nil {
		return err
	}
	return printNodes(nodes)
}

// runSelect persists one level of the directory selection; deeper
// levels are cleared automatically.
func runSelect(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("select", flag.ContinueOnError)
	apartment := apartmentFlag(fs)
	level := fs.String("level", "", "level to select (apartment|building|floor|room)")
	id := fs.String("id", "", "node id (building, floor and room levels)")
	name := fs.String("name", "", "node display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	switch *level {
	case "apartment":
		return deps.Directory.SelectApartment(ctx.Ctx, model.ApartmentCategory(*apartment))
	case "building":
		return deps.Directory.SelectBuilding(ctx.Ctx, *id, *name)
	case "floor":
		return deps.Directory.SelectFloor(ctx.Ctx, *id, *name)
	case "room":
		return deps.Directory.SelectRoom(ctx.Ctx, *id, *name)
	default:
		return fmt.Errorf("unknown selection level %q", *level)
	}
}

func runBalance(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	apartment := apartmentFlag(fs)
	room := fs.String("room", "", "room id (defaults to the persisted selection)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	category := model.ApartmentCategory(*apartment)
	roomID := *room
	if roomID == "" {
		selection, selErr := deps.Directory.Selection(ctx.Ctx)
		if selErr != nil {
			return selErr
		}
		if selection.RoomID == "" {
			return errors.New("no room selected; pass -room or run select first")
		}
		category = model.ApartmentCategory(selection.ApartmentID)
		roomID = selection.RoomID
	}

	balance, err := deps.Directory.QueryBalance(ctx.Ctx, category, roomID)
	if err != nil {
		return err
	}
	return writef(os.Stdout, "balance: %s\n", balance)
}

func runProfile(ctx *commandContext, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: passd-admin profile")
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	profile, err := deps.Profiles.CachedProfile(ctx.Ctx)
	if errors.Is(err, service.ErrNoCachedProfile) {
		return writef(os.Stdout, "no cached profile yet; run the agent first\n")
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return writef(os.Stdout, "%s\n", out)
}

func printNodes(nodes []model.DirectoryNode) error {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tNAME\n"); err != nil {
		return err
	}
	for _, n := range nodes {
		if err := writef(tw, "%s\t%s\n", n.ID, n.Name); err != nil {
			return err
		}
	}
	return tw.Flush()
}
