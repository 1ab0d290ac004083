// Command passd-admin manages the agent's settings and runs one-off
// lookups against the pass service: identity token, preferences,
// directory walks and balance queries.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/huihutong/passd/config"
	"github.com/huihutong/passd/internal/bootstrap"
	"github.com/huihutong/passd/internal/service"
	"github.com/huihutong/passd/internal/store"
	"github.com/huihutong/passd/internal/upstream"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    context.Background(),
		Logger: logger,
		Config: cfg,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"token-set": {
			name:        "token-set",
			description: "Store a new OpenID; clears any cached session credential",
			run:         runTokenSet,
		},
		"token-show": {
			name:        "token-show",
			description: "Show the stored OpenID and whether a session credential is cached",
			run:         runTokenShow,
		},
		"prefs-show": {
			name:        "prefs-show",
			description: "Show the persisted preferences",
			run:         runPrefsShow,
		},
		"prefs-set": {
			name:        "prefs-set",
			description: "Update preferences (interval, scale, startup view, color mode)",
			run:         runPrefsSet,
		},
		"buildings": {
			name:        "buildings",
			description: "List the buildings of an apartment category",
			run:         runBuildings,
		},
		"floors": {
			name:        "floors",
			description: "List the floors of a building",
			run:         runFloors,
		},
		"rooms": {
			name:        "rooms",
			description: "List the rooms of a floor",
			run:         runRooms,
		},
		"select": {
			name:        "select",
			description: "Persist a directory selection (apartment, building, floor, room)",
			run:         runSelect,
		},
		"balance": {
			name:        "balance",
			description: "Query the utility balance for the selected or given room",
			run:         runBalance,
		},
		"profile": {
			name:        "profile",
			description: "Show the cached profile summary",
			run:         runProfile,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stderr, "usage: passd-admin <command> [flags]\n\ncommands:\n"); err != nil {
		return err
	}

	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	for _, name := range names {
		if err := writef(tw, "  %s\t%s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

// adminDeps bundles the store and services a command needs, plus the
// closer for the storage backend.
type adminDeps struct {
	Store       store.Store
	Credentials *service.CredentialService
	Directory   *service.DirectoryService
	Profiles    *service.ProfileService
	close       func()
}

func (d *adminDeps) Close() { d.close() }

func buildDeps(ctx *commandContext) (*adminDeps, error) {
	settingsStore, closer, err := bootstrap.OpenStore(ctx.Ctx, ctx.Config.Storage, ctx.Logger)
	if err != nil {
		return nil, err
	}

	client, err := upstream.NewClient(upstream.Config{
		BaseURL: ctx.Config.Upstream.BaseURL,
		Timeout: ctx.Config.Upstream.Timeout,
		Logger:  ctx.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build upstream client: %w", err)
	}

	creds, err := service.NewCredentialService(service.CredentialServiceOptions{
		Exchanger: client,
		Store:     settingsStore,
		Logger:    ctx.Logger,
	})
	if err != nil {
		return nil, err
	}

	directory, err := service.NewDirectoryService(service.DirectoryServiceOptions{
		API:         client,
		Credentials: creds,
		Store:       settingsStore,
	})
	if err != nil {
		return nil, err
	}

	profiles, err := service.NewProfileService(service.ProfileServiceOptions{
		API:         client,
		Credentials: creds,
		Store:       settingsStore,
		Timeout:     ctx.Config.Upstream.ProfileTimeout,
		Logger:      ctx.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &adminDeps{
		Store:       settingsStore,
		Credentials: creds,
		Directory:   directory,
		Profiles:    profiles,
		close: func() {
			if cerr := closer.Close(); cerr != nil {
				ctx.Logger.Error("close settings store failed", "error", cerr)
			}
		},
	}, nil
}
