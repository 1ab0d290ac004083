package main

import (
	"errors"
	"flag"
	"os"

	"github.com/huihutong/passd/internal/domain/model"
	"github.com/huihutong/passd/internal/store"
)

func runTokenSet(ctx *commandContext, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: passd-admin token-set <openid>")
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	if err := deps.Credentials.SetIdentityToken(ctx.Ctx, args[0]); err != nil {
		return err
	}
	ctx.Logger.InfoContext(ctx.Ctx, "identity token updated; cached credential cleared")
	return nil
}

func runTokenShow(ctx *commandContext, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: passd-admin token-show")
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	settings, err := deps.Store.Load(ctx.Ctx)
	if err != nil {
		return err
	}
	if settings.OpenID == "" {
		return writef(os.Stdout, "no OpenID configured\n")
	}
	cached := "no"
	if settings.Satoken != "" {
		cached = "yes"
	}
	return writef(os.Stdout, "openid: %s\nsession credential cached: %s\n", settings.OpenID, cached)
}

func runPrefsShow(ctx *commandContext, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: passd-admin prefs-show")
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	settings, err := deps.Store.Load(ctx.Ctx)
	if err != nil {
		return err
	}
	p := settings.Preferences
	return writef(os.Stdout,
		"refresh interval: %ds\nscale factor: %.2f\nstartup view: %s\ncolor mode: %s\n",
		p.RefreshIntervalSeconds, p.ScaleFactor, p.StartupView, p.ColorMode)
}

func runPrefsSet(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("prefs-set", flag.ContinueOnError)
	interval := fs.Int("interval", 0, "refresh interval in seconds (5-300)")
	scale := fs.Float64("scale", 0, "display scale factor (0.5-3.0)")
	startup := fs.String("startup", "", "startup view (access|utility|profile|about)")
	colorMode := fs.String("color-mode", "", "color mode (system|light|dark)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *interval == 0 && *scale == 0 && *startup == "" && *colorMode == "" {
		return errors.New("nothing to set; pass -interval, -scale, -startup or -color-mode")
	}

	deps, err := buildDeps(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	return deps.Store.Update(ctx.Ctx, func(settings *store.Settings) error {
		if *interval != 0 {
			if err := settings.Preferences.SetRefreshInterval(*interval); err != nil {
				return err
			}
		}
		if *scale != 0 {
			if err := settings.Preferences.SetScaleFactor(*scale); err != nil {
				return err
			}
		}
		if *startup != "" {
			if err := settings.Preferences.SetStartupView(model.StartupView(*startup)); err != nil {
				return err
			}
		}
		if *colorMode != "" {
			if err := settings.Preferences.SetColorMode(model.ColorMode(*colorMode)); err != nil {
				return err
			}
		}
		return nil
	})
}
